package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

func TestProjectMonthlyMatrix(t *testing.T) {
	students := []models.Student{
		student("1", "Andi", "111", "3", "L"),
		student("2", "Citra", "", "3", "PEREMPUAN"),
	}
	records := []models.AttendanceRecord{
		record(t, "01/02/2025", "Andi", "111", "3", models.StatusPresent),
		record(t, "01/02/2025", "Citra", "", "3", models.StatusSick),
		record(t, "03/02/2025", "Andi", "111", "3", models.StatusPresent),
	}
	cal := Calendar{SpecialDates: []models.SpecialDate{{Start: mustDate(t, "03/02/2025"), Description: "Cuti"}}}
	days := cal.Month(time.February, 2025, "3")
	months := []StudentMonth{
		Reconcile(students[0], time.February, 2025, records, nil),
		Reconcile(students[1], time.February, 2025, records, nil),
	}

	m := ProjectMonthlyMatrix("3", time.February, 2025, students, months, days)

	require.Len(t, m.Rows, 2)
	assert.Equal(t, "N/A", m.Rows[1].NISN)
	assert.Equal(t, "P", m.Rows[1].Sex)
	assert.Equal(t, "H", m.Rows[0].Cells[0])
	assert.Equal(t, models.StatusCounts{Hadir: 2, Sakit: 1}, m.Totals)
	assert.Equal(t, models.StatusPercentages{Hadir: 67, Sakit: 33}, m.Percent)
	assert.Equal(t, models.GenderSummary{Male: 1, Female: 1, Total: 2}, m.Gender)
	// February 2025: 28 days, 4 Sundays, one holiday.
	assert.Equal(t, 23, m.EffectiveDays)
	assert.Equal(t, models.DayNationalHoliday, m.Days[2].Kind)
	assert.Equal(t, "FFC7CE", DayKindFill(m.Days[2].Kind))
	assert.Empty(t, DayKindFill(m.Days[0].Kind))

	headers := m.Headers()
	assert.Len(t, headers, 4+28+4)
	assert.Equal(t, []string{"H", "S", "I", "A"}, headers[len(headers)-4:])

	table := m.Table()
	require.Len(t, table, 2+5)
	assert.Equal(t, []string{"1", "111", "Andi", "L", "H", "-", "H"}, table[0].Cells[:7])
	assert.Equal(t, []string{"2", "0", "0", "0"}, table[0].Cells[32:])

	present := table[2]
	assert.Equal(t, "Jumlah Hadir", present.Cells[0])
	assert.Equal(t, 4, present.Merge)
	assert.Equal(t, "1", present.Cells[4])
	assert.Equal(t, "", present.Cells[5])
	assert.Equal(t, "1", present.Cells[6])
	assert.Equal(t, "50%", table[3].Cells[4])
	assert.Equal(t, "100%", table[3].Cells[6])

	assert.Equal(t, "TOTAL", table[4].Cells[0])
	assert.Equal(t, []string{"2", "1", "0", "0"}, table[4].Cells[32:])
	assert.Equal(t, []string{"67%", "33%", "0%", "0%"}, table[5].Cells[32:])
	assert.Equal(t, "HARI EFEKTIF", table[6].Cells[0])
	assert.Equal(t, "23 Hari", table[6].Cells[32])
}

func TestRecapTable(t *testing.T) {
	rows := []models.RecapRow{{Name: "Andi", Class: "3", Hadir: 3, Alpa: 1, PercentPresent: 75}}
	recap := models.Recap{Rows: rows, Summary: Aggregate(rows)}
	table := RecapTable(recap)
	require.Len(t, table, 3)
	assert.Equal(t, []string{"1", "Andi", "3", "3", "1", "0", "0", "75%"}, table[0].Cells)
	assert.Equal(t, []string{"", "TOTAL", "", "3", "1", "0", "0", ""}, table[1].Cells)
	assert.Equal(t, []string{"", "PERSEN", "", "75.00%", "25.00%", "0.00%", "0.00%", ""}, table[2].Cells)

	empty := RecapTable(models.Recap{})
	assert.Equal(t, "0.00%", empty[1].Cells[3])
}
