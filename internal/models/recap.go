package models

import "time"

// RecapRow is a per-student summary, either pre-aggregated by the store or
// recomputed locally from attendance history.
type RecapRow struct {
	Name           Text   `json:"nama"`
	Class          Text   `json:"kelas"`
	Hadir          Number `json:"hadir"`
	Alpa           Number `json:"alpa"`
	Izin           Number `json:"izin"`
	Sakit          Number `json:"sakit"`
	PercentPresent Number `json:"persenHadir"`
}

// Total returns the row's status total.
func (r RecapRow) Total() int {
	return r.Hadir.Int() + r.Alpa.Int() + r.Izin.Int() + r.Sakit.Int()
}

// RecapTotals aggregates a recap row set.
type RecapTotals struct {
	Hadir      int `json:"hadir"`
	Alpa       int `json:"alpa"`
	Izin       int `json:"izin"`
	Sakit      int `json:"sakit"`
	GrandTotal int `json:"total"`
}

// RecapPercentages are status shares of the grand total. Values are 0 when
// the grand total is 0.
type RecapPercentages struct {
	Hadir float64 `json:"hadir"`
	Alpa  float64 `json:"alpa"`
	Izin  float64 `json:"izin"`
	Sakit float64 `json:"sakit"`
}

// RecapSummary is the result of aggregating a recap row set.
type RecapSummary struct {
	Totals RecapTotals `json:"totals"`
	// Percent is rounded to two decimals for spreadsheet display.
	Percent RecapPercentages `json:"percent"`
	// PercentInt is rounded to whole percent for charts.
	PercentInt RecapPercentages `json:"percentInt"`
}

// Recap is a recap report for one class and period.
type Recap struct {
	Class   string       `json:"kelas"`
	Period  string       `json:"periode"`
	Source  string       `json:"source"`
	Rows    []RecapRow   `json:"rows"`
	Summary RecapSummary `json:"summary"`
}

// Recap sources.
const (
	RecapSourceStore = "store"
	RecapSourceLocal = "local"
)

// Semester identifies the half of the school year.
type Semester int

const (
	// SemesterOdd runs July to December.
	SemesterOdd Semester = 1
	// SemesterEven runs January to June.
	SemesterEven Semester = 2
)

// Months lists the six months of the semester in order.
func (s Semester) Months() []time.Month {
	start := time.January
	if s == SemesterOdd {
		start = time.July
	}
	months := make([]time.Month, 6)
	for i := range months {
		months[i] = start + time.Month(i)
	}
	return months
}

// Valid reports whether s is 1 or 2.
func (s Semester) Valid() bool { return s == SemesterOdd || s == SemesterEven }

// StatusValues holds one number per status, keyed the way the store's
// graph action keys them.
type StatusValues struct {
	Hadir Number `json:"Hadir"`
	Alpha Number `json:"Alpha"`
	Izin  Number `json:"Izin"`
	Sakit Number `json:"Sakit"`
}

// GraphData maps month names to status values.
type GraphData map[string]StatusValues

// ChartSeries is one status line of the semester chart.
type ChartSeries struct {
	Status Status `json:"status"`
	Values []int  `json:"values"`
}

// SemesterChart is the fixed six-month chart for one class.
type SemesterChart struct {
	Class    string        `json:"kelas"`
	Semester Semester      `json:"semester"`
	Labels   []string      `json:"labels"`
	Series   []ChartSeries `json:"series"`
}
