package models

import "strings"

// ScheduleRow is a jadwal mengajar row as returned by the store.
type ScheduleRow struct {
	Class Text `json:"kelas"`
	Days  Text `json:"hari"`
}

// TeachingSchedule lists the weekdays on which a class is taught.
type TeachingSchedule struct {
	Class string   `json:"kelas"`
	Days  []string `json:"hari"`
}

// ParseScheduleDays splits a comma-joined weekday list.
func ParseScheduleDays(raw string) []string {
	parts := strings.Split(raw, ",")
	days := make([]string, 0, len(parts))
	for _, part := range parts {
		if day := strings.TrimSpace(part); day != "" {
			days = append(days, day)
		}
	}
	return days
}

// JoinScheduleDays is the inverse of ParseScheduleDays.
func JoinScheduleDays(days []string) string {
	return strings.Join(days, ", ")
}

// Teaches reports whether dayName is one of the scheduled weekdays.
func (s TeachingSchedule) Teaches(dayName string) bool {
	for _, day := range s.Days {
		if strings.EqualFold(day, dayName) {
			return true
		}
	}
	return false
}
