package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Rekap Kehadiran",
		Meta:    []string{"Kelas: X IPA 1"},
		Headers: []string{"No", "Nama", "1", "2", "H"},
		Widths:  []float64{1, 4},
		Rows: []Row{
			{Cells: []string{"1", "Ani", "H", "-", "1"}},
			{Cells: []string{"2", "Budi", "A"}},
			{Cells: []string{"TOTAL", "", "", "", "1"}, Merge: 4, Summary: true},
		},
		ColumnFills: map[int]string{3: "FF9999"},
		Signature: &Signature{
			PlaceDate:  "Medan, 14 Oktober 2026",
			LeftTitle:  "Kepala Sekolah",
			LeftName:   "Drs. Kepala",
			LeftID:     "NIP. 123",
			RightTitle: "Wali Kelas",
			RightName:  "Guru",
			RightID:    "NIP. 456",
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	expected := "No,Nama,1,2,H\n1,Ani,H,-,1\n2,Budi,A,,\nTOTAL,,,,1\n"
	assert.Equal(t, expected, string(out))
}

func TestCSVExporterWritesNotesAfterTable(t *testing.T) {
	data := sampleDataset()
	data.Rows = data.Rows[:1]
	data.Notes = []string{"Hari efektif: 22", "L: 10, P: 12"}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	expected := "No,Nama,1,2,H\n1,Ani,H,-,1\n\nHari efektif: 22\n\"L: 10, P: 12\"\n"
	assert.Equal(t, expected, string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewXLSXExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := sampleDataset()
	data.Landscape = true
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(xlsxSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Rekap Kehadiran", title)

	header, err := f.GetCellValue(xlsxSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Nama", header)

	name, err := f.GetCellValue(xlsxSheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "Budi", name)

	total, err := f.GetCellValue(xlsxSheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", total)

	merged, err := f.GetMergeCells(xlsxSheet)
	require.NoError(t, err)
	refs := make([]string, 0, len(merged))
	for _, m := range merged {
		refs = append(refs, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, refs, "A1:E1")
	assert.Contains(t, refs, "A7:D7")
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#FFE699")
	require.True(t, ok)
	assert.Equal(t, []int{255, 230, 153}, []int{r, g, b})

	_, _, _, ok = parseHex("zz")
	assert.False(t, ok)
}
