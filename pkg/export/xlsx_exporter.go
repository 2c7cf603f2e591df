package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type xlsxStyles struct {
	f       *excelize.File
	title   int
	header  int
	body    int
	summary int
	fills   map[string]int
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	s := &xlsxStyles{f: f, fills: map[string]int{}}
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if s.body, err = f.NewStyle(&excelize.Style{
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	if s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// fill returns a bordered style with the given background, creating it once.
func (s *xlsxStyles) fill(hex string, bold bool) (int, error) {
	key := hex
	if bold {
		key += ":b"
	}
	if id, ok := s.fills[key]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: bold},
		Border:    thinBorder,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, err
	}
	s.fills[key] = id
	return id, nil
}

// Render produces an XLSX workbook for the dataset.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, fmt.Errorf("xlsx styles: %w", err)
	}
	width := len(data.Headers)
	row := 1

	if data.Title != "" {
		if err := setMergedLabel(f, row, 1, width, data.Title, styles.title); err != nil {
			return nil, err
		}
		row++
	}
	for _, line := range data.Meta {
		if err := setCell(f, 1, row, line); err != nil {
			return nil, err
		}
		row++
	}
	if row > 1 {
		row++
	}

	for i, header := range data.Headers {
		if err := setCell(f, i+1, row, header); err != nil {
			return nil, err
		}
		style := styles.header
		if hex := data.ColumnFills[i]; hex != "" {
			if style, err = styles.fill(hex, true); err != nil {
				return nil, err
			}
		}
		if err := styleRange(f, i+1, row, i+1, row, style); err != nil {
			return nil, err
		}
	}
	row++

	for _, r := range data.Rows {
		base := styles.body
		if r.Summary {
			base = styles.summary
		}
		if err := styleRange(f, 1, row, width, row, base); err != nil {
			return nil, err
		}
		start := 0
		if r.Merge > 1 {
			if err := setMergedLabel(f, row, 1, r.Merge, r.cell(0), base); err != nil {
				return nil, err
			}
			start = r.Merge
		}
		for col := start; col < width; col++ {
			if err := setCell(f, col+1, row, r.cell(col)); err != nil {
				return nil, err
			}
			if hex := data.ColumnFills[col]; hex != "" && !r.Summary {
				style, err := styles.fill(hex, false)
				if err != nil {
					return nil, err
				}
				if err := styleRange(f, col+1, row, col+1, row, style); err != nil {
					return nil, err
				}
			}
		}
		row++
	}

	for i := range data.Headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(xlsxSheet, name, name, 5*data.weight(i)); err != nil {
			return nil, fmt.Errorf("xlsx column width: %w", err)
		}
	}

	if len(data.Notes) > 0 {
		row++
		for _, line := range data.Notes {
			if err := setCell(f, 1, row, line); err != nil {
				return nil, err
			}
			row++
		}
	}

	if data.Signature != nil {
		if err := writeXLSXSignature(f, *data.Signature, row+1, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
		return fmt.Errorf("xlsx set %s: %w", cell, err)
	}
	return nil
}

func styleRange(f *excelize.File, fromCol, fromRow, toCol, toRow, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(xlsxSheet, from, to, style)
}

func setMergedLabel(f *excelize.File, row, fromCol, toCol int, value string, style int) error {
	if err := setCell(f, fromCol, row, value); err != nil {
		return err
	}
	if toCol > fromCol {
		from, _ := excelize.CoordinatesToCellName(fromCol, row)
		to, err := excelize.CoordinatesToCellName(toCol, row)
		if err != nil {
			return err
		}
		if err := f.MergeCell(xlsxSheet, from, to); err != nil {
			return fmt.Errorf("xlsx merge %s:%s: %w", from, to, err)
		}
	}
	return styleRange(f, fromCol, row, toCol, row, style)
}

func writeXLSXSignature(f *excelize.File, sig Signature, row, width int) error {
	right := width/2 + 1
	if right < 2 {
		right = 2
	}
	lines := [][2]string{
		{"", sig.PlaceDate},
		{sig.LeftTitle, sig.RightTitle},
		{"", ""},
		{"", ""},
		{sig.LeftName, sig.RightName},
		{sig.LeftID, sig.RightID},
	}
	for i, line := range lines {
		if line[0] != "" {
			if err := setCell(f, 2, row+i, line[0]); err != nil {
				return err
			}
		}
		if line[1] != "" {
			if err := setCell(f, right, row+i, line[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
