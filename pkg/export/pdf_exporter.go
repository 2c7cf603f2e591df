package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a bordered table on A4.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the dataset title, meta lines, table
// body and optional signature block.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("pdf"); err != nil {
		return nil, err
	}
	orientation, usable := "P", 190.0
	if data.Landscape {
		orientation, usable = "L", 277.0
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, strings.ToUpper(data.Title), "", 1, "C", false, 0, "")
	}
	if len(data.Meta) > 0 {
		pdf.SetFont("Arial", "", 9)
		for _, line := range data.Meta {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)

	widths := make([]float64, len(data.Headers))
	total := data.totalWeight()
	for i := range data.Headers {
		widths[i] = usable * data.weight(i) / total
	}
	fontSize := 8.0
	if len(data.Headers) > 20 {
		fontSize = 6
	}

	pdf.SetFont("Arial", "B", fontSize)
	for i, header := range data.Headers {
		fill := setFill(pdf, data.ColumnFills[i])
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", fill, 0, "")
	}
	pdf.Ln(-1)

	for _, row := range data.Rows {
		style := ""
		if row.Summary {
			style = "B"
		}
		pdf.SetFont("Arial", style, fontSize)
		start := 0
		if row.Merge > 1 {
			var w float64
			for i := 0; i < row.Merge && i < len(widths); i++ {
				w += widths[i]
			}
			pdf.CellFormat(w, 6, row.cell(0), "1", 0, "C", false, 0, "")
			start = row.Merge
		}
		for i := start; i < len(widths); i++ {
			fill := false
			if !row.Summary {
				fill = setFill(pdf, data.ColumnFills[i])
			}
			align := "C"
			if w := data.weight(i); w > 1 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, row.cell(i), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(data.Notes) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 8)
		for _, line := range data.Notes {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	if data.Signature != nil {
		writeSignature(pdf, *data.Signature, usable)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func setFill(pdf *gofpdf.Fpdf, hex string) bool {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return false
	}
	pdf.SetFillColor(r, g, b)
	return true
}

func writeSignature(pdf *gofpdf.Fpdf, sig Signature, usable float64) {
	half := usable / 2
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(half, 5, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, sig.PlaceDate, "", 1, "C", false, 0, "")
	pdf.CellFormat(half, 5, sig.LeftTitle, "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, sig.RightTitle, "", 1, "C", false, 0, "")
	pdf.Ln(16)
	pdf.SetFont("Arial", "BU", 9)
	pdf.CellFormat(half, 5, sig.LeftName, "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, sig.RightName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(half, 5, sig.LeftID, "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, sig.RightID, "", 1, "C", false, 0, "")
}
