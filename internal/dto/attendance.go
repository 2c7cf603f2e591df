package dto

// PeriodQuery selects a month view. Month and year arrive as query params.
type PeriodQuery struct {
	Class string `form:"kelas"`
	Month int    `form:"bulan"`
	Year  int    `form:"tahun"`
}

// DailyQuery selects the daily entry screen.
type DailyQuery struct {
	Date  string `form:"tanggal"`
	Class string `form:"kelas"`
}

// GenerationQuery carries the draft generation a client last saw.
type GenerationQuery struct {
	Generation int64 `form:"generation"`
}

// Draft patch actions.
const (
	DraftActionSelectPeriod = "select_period"
	DraftActionSetStatus    = "set_status"
	DraftActionCancel       = "cancel"
)

// DraftPatchRequest is the PATCH /attendance/drafts/:id body. Period is used
// by select_period, Edits by set_status.
type DraftPatchRequest struct {
	Action     string            `json:"action"`
	Generation int64             `json:"generation"`
	Class      string            `json:"kelas,omitempty"`
	Month      int               `json:"bulan,omitempty"`
	Year       int               `json:"tahun,omitempty"`
	Edits      []DraftCellChange `json:"edits,omitempty"`
}

// DraftCellChange is one cell of a set_status patch.
type DraftCellChange struct {
	StudentID string `json:"studentId"`
	Day       int    `json:"day"`
	Status    string `json:"status"`
}

// DeleteAttendanceRequest removes attendance for a month, optionally
// narrowed to one class.
type DeleteAttendanceRequest struct {
	Class string `json:"kelas"`
	Month int    `json:"bulan"`
	Year  int    `json:"tahun"`
}
