package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the display and wire format used by the attendance store.
const DateLayout = "02/01/2006"

var (
	strictDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	looseDatePattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// Date is a calendar day with bounded components. The zero value is not a
// valid date; construct one with NewDate or ParseDate.
type Date struct {
	Day   int
	Month time.Month
	Year  int
}

// NewDate returns the date for the given components, or false when they do
// not name a real calendar day.
func NewDate(year int, month time.Month, day int) (Date, bool) {
	if year < 1 || month < time.January || month > time.December {
		return Date{}, false
	}
	if day < 1 || day > DaysIn(month, year) {
		return Date{}, false
	}
	return Date{Day: day, Month: month, Year: year}, true
}

// ParseDate parses D/M/YYYY or DD/MM/YYYY. It is the single place where
// date strings coming from the store are turned into dates.
func ParseDate(raw string) (Date, error) {
	m := looseDatePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Date{}, fmt.Errorf("invalid date %q", raw)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	d, ok := NewDate(year, time.Month(month), day)
	if !ok {
		return Date{}, fmt.Errorf("invalid date %q", raw)
	}
	return d, nil
}

// ParseStrictDate accepts only zero-padded DD/MM/YYYY.
func ParseStrictDate(raw string) (Date, error) {
	if !strictDatePattern.MatchString(raw) {
		return Date{}, fmt.Errorf("invalid date %q", raw)
	}
	return ParseDate(raw)
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return Date{Day: t.Day(), Month: t.Month(), Year: t.Year()}
}

// DaysIn returns the number of days in month of year.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// InMonth reports whether d falls in month of year.
func (d Date) InMonth(month time.Month, year int) bool {
	return d.Month == month && d.Year == year
}

// String formats d as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// MarshalJSON encodes d as a DD/MM/YYYY string; the zero date encodes as "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a DD/MM/YYYY string; "" leaves the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// DayNames are the weekday names used by teaching schedules, indexed by
// time.Weekday.
var DayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// DayName returns the schedule weekday name of d.
func (d Date) DayName() string { return DayNames[d.Weekday()] }

// MonthNames are the month names used by recaps and exports, indexed by
// time.Month-1.
var MonthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the display name of month.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return MonthNames[month-1]
}

// ParseMonth accepts a month number (1-12) or a month name in any case.
func ParseMonth(raw string) (time.Month, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for i, name := range MonthNames {
		if strings.EqualFold(name, raw) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
