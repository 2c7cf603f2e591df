package models

import "strings"

// Phrases that mark a special date as a semester break.
var semesterBreakPhrases = []string{"libur akhir semester", "libur semester"}

// SpecialDateRow is a tanggal merah row as returned by the store.
type SpecialDateRow struct {
	Date        Text `json:"tanggal"`
	EndDate     Text `json:"tanggalAkhir"`
	Description Text `json:"deskripsi"`
}

// SpecialDate is a validated non-teaching date or closed date range.
type SpecialDate struct {
	Start       Date   `json:"tanggal"`
	End         *Date  `json:"tanggalAkhir,omitempty"`
	Description string `json:"deskripsi"`
}

// IsSemesterBreak reports whether the description names a semester break.
func (s SpecialDate) IsSemesterBreak() bool {
	return IsSemesterBreakDescription(s.Description)
}

// IsSemesterBreakDescription applies the semester break phrase match.
func IsSemesterBreakDescription(description string) bool {
	lower := strings.ToLower(description)
	for _, phrase := range semesterBreakPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Contains reports whether d lies in [Start, End]. Entries without an end
// match only the start day.
func (s SpecialDate) Contains(d Date) bool {
	if s.End == nil {
		return s.Start == d
	}
	return s.Start.Compare(d) <= 0 && d.Compare(*s.End) <= 0
}

// DayKind is the teaching classification of a calendar day.
type DayKind string

const (
	DaySunday          DayKind = "SUNDAY"
	DaySemesterBreak   DayKind = "SEMESTER_BREAK"
	DayNationalHoliday DayKind = "NATIONAL_HOLIDAY"
	DayNonScheduled    DayKind = "NON_SCHEDULED"
	DayTeaching        DayKind = "TEACHING"
)

// DayClass is the classification of one date.
type DayClass struct {
	Date        Date    `json:"tanggal"`
	DayName     string  `json:"hari"`
	Kind        DayKind `json:"kind"`
	Description string  `json:"deskripsi,omitempty"`
}

// IsTeaching reports whether the day counts as an effective teaching day.
func (d DayClass) IsTeaching() bool { return d.Kind == DayTeaching }
