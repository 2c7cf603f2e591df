package service

import (
	"math"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// Aggregate sums the status counts of rows and expresses each status as a
// share of the grand total. A zero grand total yields zero percentages.
func Aggregate(rows []models.RecapRow) models.RecapSummary {
	var t models.RecapTotals
	for _, r := range rows {
		t.Hadir += r.Hadir.Int()
		t.Alpa += r.Alpa.Int()
		t.Izin += r.Izin.Int()
		t.Sakit += r.Sakit.Int()
	}
	t.GrandTotal = t.Hadir + t.Alpa + t.Izin + t.Sakit

	return models.RecapSummary{
		Totals:     t,
		Percent:    percentages(t, 2),
		PercentInt: percentages(t, 0),
	}
}

func percentages(t models.RecapTotals, decimals int) models.RecapPercentages {
	return models.RecapPercentages{
		Hadir: Percent(t.Hadir, t.GrandTotal, decimals),
		Alpa:  Percent(t.Alpa, t.GrandTotal, decimals),
		Izin:  Percent(t.Izin, t.GrandTotal, decimals),
		Sakit: Percent(t.Sakit, t.GrandTotal, decimals),
	}
}

// Percent returns part/total*100 rounded to decimals, or 0 when total is 0.
func Percent(part, total, decimals int) float64 {
	if total <= 0 {
		return 0
	}
	return roundTo(float64(part)*100/float64(total), decimals)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// FilterRecapRows keeps rows of class; AllClasses keeps everything.
func FilterRecapRows(rows []models.RecapRow, class string) []models.RecapRow {
	if models.IsAllClasses(class) {
		return rows
	}
	out := make([]models.RecapRow, 0, len(rows))
	for _, r := range rows {
		if r.Class.String() == class {
			out = append(out, r)
		}
	}
	return out
}

// LocalRecap recomputes per-student recap rows from validated records for
// the given months, in student order. Records are matched to students with
// StudentMatcher.
func LocalRecap(students []models.Student, class string, months []time.Month, year func(time.Month) int, records []models.AttendanceRecord) []models.RecapRow {
	candidates := FilterStudents(students, class)
	out := make([]models.RecapRow, 0, len(candidates))
	for _, s := range candidates {
		var c models.StatusCounts
		for _, m := range months {
			sm := Reconcile(s, m, year(m), records, nil)
			c.Hadir += sm.Counts.Hadir
			c.Izin += sm.Counts.Izin
			c.Sakit += sm.Counts.Sakit
			c.Alpha += sm.Counts.Alpha
		}
		out = append(out, models.RecapRow{
			Name:           s.Name,
			Class:          s.Class,
			Hadir:          models.Number(c.Hadir),
			Alpa:           models.Number(c.Alpha),
			Izin:           models.Number(c.Izin),
			Sakit:          models.Number(c.Sakit),
			PercentPresent: models.Number(Percent(c.Hadir, c.Total(), 2)),
		})
	}
	return out
}

// SemesterYears maps a semester month to its calendar year given the school
// year's starting year: July to December fall in startYear, January to June
// in the year after.
func SemesterYears(startYear int) func(time.Month) int {
	return func(m time.Month) int {
		if m >= time.July {
			return startYear
		}
		return startYear + 1
	}
}

// BuildSemesterChart projects pre-aggregated graph data onto the fixed six
// month window of semester. Missing months are zero-filled and values are
// rounded to whole numbers.
func BuildSemesterChart(class string, semester models.Semester, data models.GraphData) models.SemesterChart {
	months := semester.Months()
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = models.MonthName(m)
	}

	pick := map[models.Status]func(models.StatusValues) models.Number{
		models.StatusPresent: func(v models.StatusValues) models.Number { return v.Hadir },
		models.StatusAbsent:  func(v models.StatusValues) models.Number { return v.Alpha },
		models.StatusExcused: func(v models.StatusValues) models.Number { return v.Izin },
		models.StatusSick:    func(v models.StatusValues) models.Number { return v.Sakit },
	}
	order := []models.Status{models.StatusPresent, models.StatusAbsent, models.StatusExcused, models.StatusSick}

	series := make([]models.ChartSeries, 0, len(order))
	for _, status := range order {
		values := make([]int, len(labels))
		for i, label := range labels {
			values[i] = int(roundTo(float64(pick[status](data[label])), 0))
		}
		series = append(series, models.ChartSeries{Status: status, Values: values})
	}

	return models.SemesterChart{Class: class, Semester: semester, Labels: labels, Series: series}
}
