package service

import (
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// DraftEventKind enumerates monthly grid view transitions.
type DraftEventKind int

const (
	// DraftSelectPeriod points the view at a new class/month/year.
	DraftSelectPeriod DraftEventKind = iota
	// DraftSetStatus changes one cell.
	DraftSetStatus
	// DraftCancel discards all edits.
	DraftCancel
	// DraftSaved records a successful commit.
	DraftSaved
)

// DraftEvent is an input to ReduceDraft.
type DraftEvent struct {
	Kind  DraftEventKind
	Class string
	Month time.Month
	Year  int
	// Edit is the cell change for DraftSetStatus.
	Edit models.PendingEdit
	// HasRecord tells DraftSetStatus whether the store holds a record for
	// the edited cell.
	HasRecord bool
	At        time.Time
}

// ReduceDraft returns the draft that results from applying ev to d. It
// never mutates d.
//
// A cleared cell is kept as a delete marker only when the store has a
// record for it; otherwise the cell's edit is dropped.
func ReduceDraft(d models.MonthlyDraft, ev DraftEvent) models.MonthlyDraft {
	next := d
	next.Edits = copyEdits(d.Edits)
	if !ev.At.IsZero() {
		next.UpdatedAt = ev.At
	}

	switch ev.Kind {
	case DraftSelectPeriod:
		next.Class = ev.Class
		next.Month = ev.Month
		next.Year = ev.Year
		next.Generation++
		next.Edits = map[string]models.PendingEdit{}
	case DraftSetStatus:
		edit := ev.Edit
		if !edit.Date.InMonth(d.Month, d.Year) {
			return next
		}
		key := edit.Key()
		if edit.Status == models.StatusCleared && !ev.HasRecord {
			delete(next.Edits, key)
			return next
		}
		next.Edits[key] = edit
	case DraftCancel:
		next.Edits = map[string]models.PendingEdit{}
	case DraftSaved:
		next.Generation++
		next.Edits = map[string]models.PendingEdit{}
	}
	return next
}

func copyEdits(in map[string]models.PendingEdit) map[string]models.PendingEdit {
	out := make(map[string]models.PendingEdit, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
