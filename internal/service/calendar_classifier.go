package service

import (
	"strings"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// Calendar bundles the inputs that decide whether a day is a teaching day.
type Calendar struct {
	SpecialDates  []models.SpecialDate
	Schedules     []models.TeachingSchedule
	TeacherStatus string
}

// Classify applies the day precedence rules: Sunday, then semester break,
// then national holiday, then the class schedule, then teaching day.
//
// When several special dates of the same kind cover d, the one with the
// earliest start wins and list order breaks remaining ties. The schedule is
// consulted only for non-homeroom teachers with a single class selected.
func Classify(d models.Date, specialDates []models.SpecialDate, schedules []models.TeachingSchedule, teacherStatus, class string) models.DayClass {
	out := models.DayClass{Date: d, DayName: d.DayName()}

	if d.Weekday() == time.Sunday {
		out.Kind = models.DaySunday
		return out
	}

	if hit, ok := firstCovering(d, specialDates, true); ok {
		out.Kind = models.DaySemesterBreak
		out.Description = hit.Description
		return out
	}
	if hit, ok := firstCovering(d, specialDates, false); ok {
		out.Kind = models.DayNationalHoliday
		out.Description = hit.Description
		return out
	}

	if !isHomeroom(teacherStatus) && !models.IsAllClasses(class) {
		schedule, found := scheduleFor(schedules, class)
		if !found || !schedule.Teaches(out.DayName) {
			out.Kind = models.DayNonScheduled
			return out
		}
	}

	out.Kind = models.DayTeaching
	return out
}

// Classify is the method form of the package-level Classify.
func (c Calendar) Classify(d models.Date, class string) models.DayClass {
	return Classify(d, c.SpecialDates, c.Schedules, c.TeacherStatus, class)
}

// Month classifies every day of month, indexed from day 1 at position 0.
func (c Calendar) Month(month time.Month, year int, class string) []models.DayClass {
	days := models.DaysIn(month, year)
	out := make([]models.DayClass, days)
	for day := 1; day <= days; day++ {
		out[day-1] = c.Classify(models.Date{Day: day, Month: month, Year: year}, class)
	}
	return out
}

// EffectiveTeachingDays counts the days of month classified as teaching days.
func (c Calendar) EffectiveTeachingDays(month time.Month, year int, class string) int {
	return CountTeachingDays(c.Month(month, year, class))
}

// CountTeachingDays counts teaching days in an already classified range.
func CountTeachingDays(days []models.DayClass) int {
	n := 0
	for _, d := range days {
		if d.IsTeaching() {
			n++
		}
	}
	return n
}

func firstCovering(d models.Date, specialDates []models.SpecialDate, semesterBreak bool) (models.SpecialDate, bool) {
	var (
		best  models.SpecialDate
		found bool
	)
	for _, sd := range specialDates {
		if sd.IsSemesterBreak() != semesterBreak || !sd.Contains(d) {
			continue
		}
		if !found || sd.Start.Compare(best.Start) < 0 {
			best = sd
			found = true
		}
	}
	return best, found
}

func scheduleFor(schedules []models.TeachingSchedule, class string) (models.TeachingSchedule, bool) {
	class = strings.TrimSpace(class)
	for _, s := range schedules {
		if strings.TrimSpace(s.Class) == class {
			return s, true
		}
	}
	return models.TeachingSchedule{}, false
}

func isHomeroom(teacherStatus string) bool {
	status := strings.TrimSpace(teacherStatus)
	return status == "" || status == models.TeacherStatusHomeroom
}

// ParseSpecialDates validates store rows. Rows with an unreadable start or
// end date, or an end before the start, are dropped.
func ParseSpecialDates(rows []models.SpecialDateRow) []models.SpecialDate {
	out := make([]models.SpecialDate, 0, len(rows))
	for _, row := range rows {
		start, err := models.ParseDate(row.Date.String())
		if err != nil {
			continue
		}
		sd := models.SpecialDate{Start: start, Description: row.Description.String()}
		if row.EndDate != "" {
			end, err := models.ParseDate(row.EndDate.String())
			if err != nil || end.Compare(start) < 0 {
				continue
			}
			if end != start {
				sd.End = &end
			}
		}
		out = append(out, sd)
	}
	return out
}

// ParseSchedules converts store rows, skipping rows without a class.
func ParseSchedules(rows []models.ScheduleRow) []models.TeachingSchedule {
	out := make([]models.TeachingSchedule, 0, len(rows))
	for _, row := range rows {
		if row.Class == "" {
			continue
		}
		out = append(out, models.TeachingSchedule{
			Class: row.Class.String(),
			Days:  models.ParseScheduleDays(row.Days.String()),
		})
	}
	return out
}
