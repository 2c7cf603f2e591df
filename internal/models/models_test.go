package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1/7/2025")
	require.NoError(t, err)
	assert.Equal(t, Date{Day: 1, Month: time.July, Year: 2025}, d)
	assert.Equal(t, "01/07/2025", d.String())

	for _, raw := range []string{"", "31/02/2025", "2025-07-01", "=A1", "00/01/2025", "10/13/2025"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseStrictDate(t *testing.T) {
	_, err := ParseStrictDate("1/7/2025")
	assert.Error(t, err)
	d, err := ParseStrictDate("29/02/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, "Kamis", d.DayName())
}

func TestDateCompareAndJSON(t *testing.T) {
	a, _ := NewDate(2025, time.June, 1)
	b, _ := NewDate(2025, time.June, 15)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `"01/06/2025"`, string(raw))

	var decoded Date
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, a, decoded)
}

func TestTextDecodesMixedCells(t *testing.T) {
	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":" Andi ","nisn":12345,"kelas":3,"jenisKelamin":null}`), &s))
	assert.Equal(t, Text("7"), s.ID)
	assert.Equal(t, Text("Andi"), s.Name)
	assert.Equal(t, Text("12345"), s.NISN)
	assert.Equal(t, Text("3"), s.Class)
	assert.Equal(t, "N/A", s.Sex.OrNA())
}

func TestNumberDecoding(t *testing.T) {
	var row RecapRow
	require.NoError(t, json.Unmarshal([]byte(`{"nama":"A","hadir":"4","alpa":null,"izin":1,"sakit":"","persenHadir":"80,5%"}`), &row))
	assert.Equal(t, 4, row.Hadir.Int())
	assert.Equal(t, 0, row.Alpa.Int())
	assert.Equal(t, 5, row.Total())
	assert.InDelta(t, 80.5, float64(row.PercentPresent), 0.001)
}

func TestSpecialDateContains(t *testing.T) {
	start, _ := NewDate(2025, time.June, 1)
	end, _ := NewDate(2025, time.June, 15)
	rng := SpecialDate{Start: start, End: &end, Description: "Libur Semester Genap"}
	assert.True(t, rng.IsSemesterBreak())
	assert.True(t, rng.Contains(start))
	assert.True(t, rng.Contains(end))
	after, _ := NewDate(2025, time.June, 16)
	assert.False(t, rng.Contains(after))

	single := SpecialDate{Start: start, Description: "Hari Lahir Pancasila"}
	assert.False(t, single.IsSemesterBreak())
	assert.True(t, single.Contains(start))
	assert.False(t, single.Contains(end))
}

func TestStatusCodes(t *testing.T) {
	for _, s := range Statuses {
		back, ok := StatusFromCode(s.Code())
		require.True(t, ok)
		assert.Equal(t, s, back)
	}
	s, ok := ParseStatus("sakit")
	assert.True(t, ok)
	assert.Equal(t, StatusSick, s)
	s, ok = ParseStatus("")
	assert.True(t, ok)
	assert.Equal(t, StatusCleared, s)
	_, ok = ParseStatus("Bolos")
	assert.False(t, ok)
}

func TestSemesterMonths(t *testing.T) {
	assert.Equal(t, time.July, SemesterOdd.Months()[0])
	assert.Equal(t, time.December, SemesterOdd.Months()[5])
	assert.Equal(t, time.January, SemesterEven.Months()[0])
	assert.Equal(t, time.June, SemesterEven.Months()[5])
}

func TestParseMonth(t *testing.T) {
	m, ok := ParseMonth("januari")
	assert.True(t, ok)
	assert.Equal(t, time.January, m)
	m, ok = ParseMonth("12")
	assert.True(t, ok)
	assert.Equal(t, time.December, m)
	_, ok = ParseMonth("13")
	assert.False(t, ok)
}

func TestSchoolProfileHomeroom(t *testing.T) {
	var p *SchoolProfile
	assert.True(t, p.IsHomeroomTeacher())
	p = &SchoolProfile{TeacherStatus: "Guru Mapel"}
	assert.False(t, p.IsHomeroomTeacher())
	assert.Equal(t, "Guru Mapel", p.TeacherStatusLabel())
}
