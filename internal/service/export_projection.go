package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// Column fills per day kind, as RGB hex.
var dayKindFill = map[models.DayKind]string{
	models.DaySunday:          "FF9999",
	models.DayNationalHoliday: "FFC7CE",
	models.DaySemesterBreak:   "FFE699",
	models.DayNonScheduled:    "D9D9D9",
}

// DayKindFill returns the column fill for kind, or "" for teaching days.
func DayKindFill(kind models.DayKind) string { return dayKindFill[kind] }

// MatrixRow is one student line of the monthly attendance matrix.
type MatrixRow struct {
	No        int                 `json:"no"`
	StudentID string              `json:"studentId"`
	NISN      string              `json:"nisn"`
	Name      string              `json:"nama"`
	Sex       string              `json:"jenisKelamin"`
	Cells     []string            `json:"cells"`
	Counts    models.StatusCounts `json:"counts"`
}

// MonthlyMatrix is the export projection of a reconciled month: one row per
// student, per-day presence, totals and the effective teaching day count.
// Column styling comes only from Days.
type MonthlyMatrix struct {
	Class         string                   `json:"kelas"`
	Month         time.Month               `json:"bulan"`
	Year          int                      `json:"tahun"`
	Days          []models.DayClass        `json:"days"`
	Rows          []MatrixRow              `json:"rows"`
	PresentPerDay []DayPresence            `json:"presentPerDay"`
	Totals        models.StatusCounts      `json:"totals"`
	Percent       models.StatusPercentages `json:"percent"`
	EffectiveDays int                      `json:"effectiveDays"`
	Gender        models.GenderSummary     `json:"gender"`
}

// ProjectMonthlyMatrix builds the matrix for students, whose reconciled
// months are given in the same order, over the classified days of a month.
func ProjectMonthlyMatrix(class string, month time.Month, year int, students []models.Student, months []StudentMonth, days []models.DayClass) MonthlyMatrix {
	out := MonthlyMatrix{
		Class:         class,
		Month:         month,
		Year:          year,
		Days:          days,
		Rows:          make([]MatrixRow, 0, len(students)),
		PresentPerDay: DayTotals(months, len(days)),
		Totals:        SumCounts(months),
		EffectiveDays: CountTeachingDays(days),
		Gender:        SummarizeGender(students),
	}

	for i, s := range students {
		if i >= len(months) {
			break
		}
		cells := make([]string, len(days))
		for day := 1; day <= len(days); day++ {
			cells[day-1] = months[i].Code(day)
		}
		sex := s.SexGroup()
		if sex == "" {
			sex = "-"
		}
		out.Rows = append(out.Rows, MatrixRow{
			No:        i + 1,
			StudentID: s.ID.String(),
			NISN:      s.NISN.OrNA(),
			Name:      s.Name.OrNA(),
			Sex:       sex,
			Cells:     cells,
			Counts:    months[i].Counts,
		})
	}

	grand := out.Totals.Total()
	out.Percent = models.StatusPercentages{
		Hadir: int(Percent(out.Totals.Hadir, grand, 0)),
		Izin:  int(Percent(out.Totals.Izin, grand, 0)),
		Sakit: int(Percent(out.Totals.Sakit, grand, 0)),
		Alpha: int(Percent(out.Totals.Alpha, grand, 0)),
	}
	return out
}

// TableRow is a positional export row. Merge, when set, spans the first
// Merge cells into one labelled cell.
type TableRow struct {
	Cells   []string
	Merge   int
	Summary bool
}

// Headers returns the matrix header line: No, NISN, NAMA, L/P, one column
// per day, then H S I A.
func (m MonthlyMatrix) Headers() []string {
	h := []string{"No", "NISN", "NAMA", "L/P"}
	for day := 1; day <= len(m.Days); day++ {
		h = append(h, strconv.Itoa(day))
	}
	return append(h, "H", "S", "I", "A")
}

// Table flattens the matrix into rows: students, then Jumlah Hadir, % Hadir,
// TOTAL, PERSENTASE BULANAN and HARI EFEKTIF.
func (m MonthlyMatrix) Table() []TableRow {
	days := len(m.Days)
	width := 4 + days + 4
	rows := make([]TableRow, 0, len(m.Rows)+5)

	for _, r := range m.Rows {
		cells := []string{strconv.Itoa(r.No), r.NISN, r.Name, r.Sex}
		for _, code := range r.Cells {
			if code == "" {
				code = "-"
			}
			cells = append(cells, code)
		}
		cells = append(cells, counts(r.Counts)...)
		rows = append(rows, TableRow{Cells: cells})
	}

	present := make([]string, width)
	percent := make([]string, width)
	present[0], percent[0] = "Jumlah Hadir", "% Hadir"
	for i, p := range m.PresentPerDay {
		if v, ok := p.Percent(); ok {
			present[4+i] = strconv.Itoa(p.Present)
			percent[4+i] = fmt.Sprintf("%d%%", v)
		}
	}
	for i := 4 + days; i < width; i++ {
		present[i], percent[i] = "-", "-"
	}
	rows = append(rows,
		TableRow{Cells: present, Merge: 4, Summary: true},
		TableRow{Cells: percent, Merge: 4, Summary: true},
	)

	total := make([]string, width)
	total[0] = "TOTAL"
	copy(total[4+days:], counts(m.Totals))
	rows = append(rows, TableRow{Cells: total, Merge: 4 + days, Summary: true})

	pct := make([]string, width)
	pct[0] = "PERSENTASE BULANAN"
	copy(pct[4+days:], []string{
		fmt.Sprintf("%d%%", m.Percent.Hadir),
		fmt.Sprintf("%d%%", m.Percent.Sakit),
		fmt.Sprintf("%d%%", m.Percent.Izin),
		fmt.Sprintf("%d%%", m.Percent.Alpha),
	})
	rows = append(rows, TableRow{Cells: pct, Merge: 4 + days, Summary: true})

	effective := make([]string, width)
	effective[0] = "HARI EFEKTIF"
	effective[4+days] = fmt.Sprintf("%d Hari", m.EffectiveDays)
	rows = append(rows, TableRow{Cells: effective, Merge: 4 + days, Summary: true})

	return rows
}

func counts(c models.StatusCounts) []string {
	return []string{strconv.Itoa(c.Hadir), strconv.Itoa(c.Sakit), strconv.Itoa(c.Izin), strconv.Itoa(c.Alpha)}
}

// SummarizeGender counts students by sex group.
func SummarizeGender(students []models.Student) models.GenderSummary {
	var g models.GenderSummary
	for _, s := range students {
		switch s.SexGroup() {
		case models.SexMale:
			g.Male++
		case models.SexFemale:
			g.Female++
		}
	}
	g.Total = g.Male + g.Female
	return g
}

// RecapHeaders is the header line of recap tables.
var RecapHeaders = []string{"No.", "Nama", "Kelas", "Hadir", "Alpha", "Izin", "Sakit", "% Hadir"}

// RecapTable flattens a recap: one line per student then TOTAL and PERSEN
// lines with two-decimal percentages.
func RecapTable(recap models.Recap) []TableRow {
	rows := make([]TableRow, 0, len(recap.Rows)+2)
	for i, r := range recap.Rows {
		rows = append(rows, TableRow{Cells: []string{
			strconv.Itoa(i + 1),
			r.Name.OrNA(),
			r.Class.OrNA(),
			strconv.Itoa(r.Hadir.Int()),
			strconv.Itoa(r.Alpa.Int()),
			strconv.Itoa(r.Izin.Int()),
			strconv.Itoa(r.Sakit.Int()),
			formatPercent(float64(r.PercentPresent)),
		}})
	}

	t := recap.Summary.Totals
	p := recap.Summary.Percent
	rows = append(rows,
		TableRow{Summary: true, Cells: []string{
			"", "TOTAL", "",
			strconv.Itoa(t.Hadir), strconv.Itoa(t.Alpa), strconv.Itoa(t.Izin), strconv.Itoa(t.Sakit), "",
		}},
		TableRow{Summary: true, Cells: []string{
			"", "PERSEN", "",
			formatPercent2(p.Hadir), formatPercent2(p.Alpa), formatPercent2(p.Izin), formatPercent2(p.Sakit), "",
		}},
	)
	return rows
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func formatPercent2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}
