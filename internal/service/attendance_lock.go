package service

import (
	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// FilterStudents returns the students of class in their original order.
func FilterStudents(students []models.Student, class string) []models.Student {
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if s.InClass(class) {
			out = append(out, s)
		}
	}
	return out
}

// ComputeLock returns the IDs of class students that already have a stored
// record on date, with the stored status. A record locks a student when its
// date equals date, its class passes the class filter and its name equals
// the student's name.
func ComputeLock(students []models.Student, date models.Date, class string, history []models.AttendanceRecord) map[string]models.Status {
	byName := map[string]models.Status{}
	for _, rec := range history {
		if rec.Date != date {
			continue
		}
		if !models.IsAllClasses(class) && rec.Class != class {
			continue
		}
		byName[rec.Name] = rec.Status
	}

	locked := map[string]models.Status{}
	for _, s := range FilterStudents(students, class) {
		if status, ok := byName[s.Name.String()]; ok {
			locked[s.ID.String()] = status
		}
	}
	return locked
}

// DailyEntry is a student's row on the daily entry screen.
type DailyEntry struct {
	Student models.Student `json:"student"`
	Status  models.Status  `json:"status"`
	Locked  bool           `json:"locked"`
}

// BuildDailyEntries renders the daily entry rows. Locked students show their
// stored status; others show their selection, defaulting to Hadir.
func BuildDailyEntries(students []models.Student, class string, locked map[string]models.Status, selected map[string]models.Status) []DailyEntry {
	candidates := FilterStudents(students, class)
	out := make([]DailyEntry, 0, len(candidates))
	for _, s := range candidates {
		id := s.ID.String()
		entry := DailyEntry{Student: s, Status: models.StatusPresent}
		if status, ok := locked[id]; ok {
			entry.Status = status
			entry.Locked = true
		} else if status, ok := selected[id]; ok && status.Valid() {
			entry.Status = status
		}
		out = append(out, entry)
	}
	return out
}

// BuildDailyBatch returns the submission rows for unlocked entries. An empty
// result means every student already has a record for the day.
func BuildDailyBatch(date models.Date, entries []DailyEntry) []models.AttendanceSubmission {
	out := make([]models.AttendanceSubmission, 0, len(entries))
	for _, e := range entries {
		if e.Locked {
			continue
		}
		status := e.Status
		if !status.Valid() {
			status = models.StatusPresent
		}
		out = append(out, models.AttendanceSubmission{
			Date:   date.String(),
			Name:   e.Student.Name.OrNA(),
			Class:  e.Student.Class.OrNA(),
			NISN:   e.Student.NISN.OrNA(),
			Status: status,
		})
	}
	return out
}

// SummarizeEntries counts the statuses shown on the daily entry screen.
func SummarizeEntries(entries []DailyEntry) models.StatusCounts {
	var c models.StatusCounts
	for _, e := range entries {
		c.Add(e.Status)
	}
	return c
}
