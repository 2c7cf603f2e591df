package models

import (
	"fmt"
	"sort"
	"strings"
)

// Status is an attendance status as stored in the attendance sheet. The
// empty status is used by pending edits and bulk updates to mean "remove the
// stored record for this day".
type Status string

const (
	StatusPresent Status = "Hadir"
	StatusExcused Status = "Izin"
	StatusSick    Status = "Sakit"
	StatusAbsent  Status = "Alpha"
	StatusCleared Status = ""
)

// Statuses lists the persisted statuses in display order.
var Statuses = []Status{StatusPresent, StatusExcused, StatusSick, StatusAbsent}

// Valid reports whether s is one of the four persisted statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusExcused, StatusSick, StatusAbsent:
		return true
	}
	return false
}

// Code returns the single-letter grid code for s, or "" for unknown values.
func (s Status) Code() string {
	switch s {
	case StatusPresent:
		return "H"
	case StatusExcused:
		return "I"
	case StatusSick:
		return "S"
	case StatusAbsent:
		return "A"
	}
	return ""
}

// StatusFromCode maps a grid code back to a status.
func StatusFromCode(code string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "H":
		return StatusPresent, true
	case "I":
		return StatusExcused, true
	case "S":
		return StatusSick, true
	case "A":
		return StatusAbsent, true
	}
	return "", false
}

// ParseStatus accepts a status name (any case) or its grid code. The empty
// string parses as StatusCleared.
func ParseStatus(raw string) (Status, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusCleared, true
	}
	for _, s := range Statuses {
		if strings.EqualFold(string(s), raw) {
			return s, true
		}
	}
	return StatusFromCode(raw)
}

// AttendanceRow is an attendance sheet row as returned by the store, before
// validation.
type AttendanceRow struct {
	Date   Text `json:"tanggal"`
	Name   Text `json:"nama"`
	Class  Text `json:"kelas"`
	NISN   Text `json:"nisn"`
	Status Text `json:"status"`
}

// AttendanceRecord is a validated attendance row.
type AttendanceRecord struct {
	Date   Date   `json:"tanggal"`
	Name   string `json:"nama"`
	Class  string `json:"kelas"`
	NISN   string `json:"nisn"`
	Status Status `json:"status"`
}

// StatusCounts tallies statuses.
type StatusCounts struct {
	Hadir int `json:"H"`
	Izin  int `json:"I"`
	Sakit int `json:"S"`
	Alpha int `json:"A"`
}

// Add increments the counter for s. Unknown statuses are ignored.
func (c *StatusCounts) Add(s Status) {
	switch s {
	case StatusPresent:
		c.Hadir++
	case StatusExcused:
		c.Izin++
	case StatusSick:
		c.Sakit++
	case StatusAbsent:
		c.Alpha++
	}
}

// Total is the sum of all four counters.
func (c StatusCounts) Total() int { return c.Hadir + c.Izin + c.Sakit + c.Alpha }

// StatusPercentages are whole-number shares of each status in a month's
// grand total, keyed like StatusCounts.
type StatusPercentages struct {
	Hadir int `json:"H"`
	Izin  int `json:"I"`
	Sakit int `json:"S"`
	Alpha int `json:"A"`
}

// PendingEdit is an unsaved change to one student's status on one day of
// the month being edited. StatusCleared marks the stored record for deletion.
type PendingEdit struct {
	StudentID string `json:"studentId"`
	Date      Date   `json:"tanggal"`
	NISN      string `json:"nisn"`
	Name      string `json:"nama"`
	Class     string `json:"kelas"`
	Status    Status `json:"status"`
}

// Key identifies the (student, day) cell the edit targets.
func (e PendingEdit) Key() string { return EditKey(e.StudentID, e.Date.Day) }

// EditKey builds the cell key used to index pending edits.
func EditKey(studentID string, day int) string {
	return fmt.Sprintf("%s_%d", studentID, day)
}

// AttendanceSubmission is one row of a daily attendance batch.
type AttendanceSubmission struct {
	Date   string `json:"tanggal"`
	Name   string `json:"nama"`
	Class  string `json:"kelas"`
	NISN   string `json:"nisn"`
	Status Status `json:"status"`
}

// AttendanceUpdate is one row of a bulk status update; an empty status
// deletes the stored record.
type AttendanceUpdate struct {
	Date   string `json:"tanggal"`
	NISN   string `json:"nisn"`
	Status Status `json:"status"`
}

func sortUpdates(updates []AttendanceUpdate) {
	sort.Slice(updates, func(i, j int) bool {
		a, _ := ParseDate(updates[i].Date)
		b, _ := ParseDate(updates[j].Date)
		if c := a.Compare(b); c != 0 {
			return c < 0
		}
		return updates[i].NISN < updates[j].NISN
	})
}
