package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one positional line of a dataset. A positive Merge spans the first
// Merge cells into a single labelled cell holding Cells[0].
type Row struct {
	Cells   []string
	Merge   int
	Summary bool
}

// Signature is the two-column sign-off block rendered under printable
// reports. Left is the acknowledging party, Right the author.
type Signature struct {
	PlaceDate  string
	LeftTitle  string
	LeftName   string
	LeftID     string
	RightTitle string
	RightName  string
	RightID    string
}

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Meta    []string
	Headers []string
	Rows    []Row
	// Widths are relative column weights; missing entries count as 1.
	Widths []float64
	// ColumnFills maps a column index to an RGB hex fill applied to the
	// header and non-summary rows of that column.
	ColumnFills map[int]string
	// Notes are free lines printed between the table and the signature.
	Notes     []string
	Signature *Signature
	Landscape bool
}

func (d Dataset) validate(format string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", format)
	}
	return nil
}

func (d Dataset) weight(col int) float64 {
	if col < len(d.Widths) && d.Widths[col] > 0 {
		return d.Widths[col]
	}
	return 1
}

func (d Dataset) totalWeight() float64 {
	var sum float64
	for i := range d.Headers {
		sum += d.weight(i)
	}
	return sum
}

// cell returns the value at col with missing trailing cells treated as "".
func (r Row) cell(col int) string {
	if col < len(r.Cells) {
		return r.Cells[col]
	}
	return ""
}

func parseHex(hex string) (int, int, int, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
