package service

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// FilterValidAttendance keeps rows with a DD/MM/YYYY date, a name and NISN
// that are present and not spreadsheet formulas, and one of the four
// statuses. Everything else is dropped without error.
func FilterValidAttendance(rows []models.AttendanceRow) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		if isFormula(row.Date) || isFormula(row.Name) || isFormula(row.NISN) {
			continue
		}
		if row.Name == "" || row.NISN == "" {
			continue
		}
		status := models.Status(row.Status)
		if !status.Valid() {
			continue
		}
		date, err := models.ParseStrictDate(row.Date.String())
		if err != nil {
			continue
		}
		out = append(out, models.AttendanceRecord{
			Date:   date,
			Name:   row.Name.String(),
			Class:  row.Class.String(),
			NISN:   row.NISN.String(),
			Status: status,
		})
	}
	return out
}

func isFormula(t models.Text) bool { return strings.HasPrefix(t.String(), "=") }

// NormalizeNISN trims, removes all whitespace and upper-cases a NISN.
func NormalizeNISN(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}

// NormalizeName trims and lower-cases a student name.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// StudentMatcher resolves attendance rows to one student. A row belongs to
// the student when the normalized NISNs are equal or the normalized names
// are equal; a side only counts when both values are non-empty. Rows saved
// under a NISN that was later edited still match by name.
type StudentMatcher struct {
	nisn string
	name string
}

// NewStudentMatcher builds a matcher for s.
func NewStudentMatcher(s models.Student) StudentMatcher {
	return StudentMatcher{nisn: NormalizeNISN(s.NISN.String()), name: NormalizeName(s.Name.String())}
}

// Match reports whether the row identified by nisn and name belongs to the
// student.
func (m StudentMatcher) Match(nisn, name string) bool {
	rnisn := NormalizeNISN(nisn)
	nisnMatch := m.nisn != "" && rnisn != "" && m.nisn == rnisn
	rname := NormalizeName(name)
	nameMatch := m.name != "" && rname != "" && m.name == rname
	return nisnMatch || nameMatch
}

// StudentMonth is one student's reconciled month.
type StudentMonth struct {
	StudentID string `json:"studentId"`
	// Days maps day of month to status code. Days without a status are absent.
	Days   map[int]string      `json:"days"`
	Counts models.StatusCounts `json:"counts"`
}

// Code returns the status code for day, or "".
func (m StudentMonth) Code(day int) string { return m.Days[day] }

// Reconcile merges server records and pending edits into one status per
// day for student. Pending edits always win: a status overwrites the day
// and a cleared edit removes it.
func Reconcile(student models.Student, month time.Month, year int, records []models.AttendanceRecord, edits map[string]models.PendingEdit) StudentMonth {
	out := StudentMonth{StudentID: student.ID.String(), Days: map[int]string{}}
	matcher := NewStudentMatcher(student)

	for _, rec := range records {
		if !rec.Date.InMonth(month, year) || !matcher.Match(rec.NISN, rec.Name) {
			continue
		}
		if code := rec.Status.Code(); code != "" {
			out.Days[rec.Date.Day] = code
		}
	}

	for _, edit := range sortedEdits(edits) {
		if edit.StudentID != out.StudentID || !edit.Date.InMonth(month, year) {
			continue
		}
		if edit.Status == models.StatusCleared {
			delete(out.Days, edit.Date.Day)
			continue
		}
		if code := edit.Status.Code(); code != "" {
			out.Days[edit.Date.Day] = code
		}
	}

	for _, code := range out.Days {
		status, _ := models.StatusFromCode(code)
		out.Counts.Add(status)
	}
	return out
}

// sortedEdits orders edits by key so overlay results never depend on map
// iteration order.
func sortedEdits(edits map[string]models.PendingEdit) []models.PendingEdit {
	keys := make([]string, 0, len(edits))
	for k := range edits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]models.PendingEdit, 0, len(keys))
	for _, k := range keys {
		out = append(out, edits[k])
	}
	return out
}

// HasRecord reports whether a server record exists for student on d.
func HasRecord(student models.Student, d models.Date, records []models.AttendanceRecord) bool {
	matcher := NewStudentMatcher(student)
	for _, rec := range records {
		if rec.Date == d && matcher.Match(rec.NISN, rec.Name) {
			return true
		}
	}
	return false
}

// DayPresence is the per-day presence tally across a reconciled class.
type DayPresence struct {
	Present int `json:"hadir"`
	Total   int `json:"total"`
}

// Percent returns the whole-number presence percentage and false when no
// student has a status that day.
func (p DayPresence) Percent() (int, bool) {
	if p.Total == 0 {
		return 0, false
	}
	return int(Percent(p.Present, p.Total, 0)), true
}

// DayTotals tallies presence per day of a month across reconciled students.
// The result has one entry per day, day 1 at index 0.
func DayTotals(months []StudentMonth, daysInMonth int) []DayPresence {
	out := make([]DayPresence, daysInMonth)
	for _, m := range months {
		for day, code := range m.Days {
			if day < 1 || day > daysInMonth || code == "" {
				continue
			}
			out[day-1].Total++
			if code == "H" {
				out[day-1].Present++
			}
		}
	}
	return out
}

// SumCounts adds up the status counts of reconciled students.
func SumCounts(months []StudentMonth) models.StatusCounts {
	var total models.StatusCounts
	for _, m := range months {
		total.Hadir += m.Counts.Hadir
		total.Izin += m.Counts.Izin
		total.Sakit += m.Counts.Sakit
		total.Alpha += m.Counts.Alpha
	}
	return total
}
