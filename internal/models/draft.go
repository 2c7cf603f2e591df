package models

import "time"

// MonthlyDraft holds the unsaved edits of one monthly grid view. Generation
// increases whenever the view is pointed at a new period or saved, so
// requests prepared against an older view can be recognised and rejected.
type MonthlyDraft struct {
	ID         string                 `json:"id"`
	Class      string                 `json:"kelas"`
	Month      time.Month             `json:"bulan"`
	Year       int                    `json:"tahun"`
	Generation int64                  `json:"generation"`
	Edits      map[string]PendingEdit `json:"edits"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// Updates flattens the edits into bulk update rows ordered by date then
// NISN.
func (d MonthlyDraft) Updates() []AttendanceUpdate {
	out := make([]AttendanceUpdate, 0, len(d.Edits))
	for _, e := range d.Edits {
		out = append(out, AttendanceUpdate{Date: e.Date.String(), NISN: e.NISN, Status: e.Status})
	}
	sortUpdates(out)
	return out
}
