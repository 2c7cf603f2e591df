package dto

// ClearRequest confirms the destructive bulk clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}
