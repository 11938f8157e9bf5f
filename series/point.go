package series

import (
	"fmt"
	"strings"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
)

// Point is a live view onto one row of a series, combining the row's date
// with named access to its values. It holds a non-owning reference: all reads
// and writes pass through to the series arrays at the current row, and named
// fields are resolved on every access, so the view stays correct after the
// series is resorted or truncated to a length that still covers the row.
//
// A Point must not outlive its series, and a row index left beyond the series
// after truncation yields undefined behavior on access; neither is guarded at
// runtime.
type Point struct {
	ts    *Series
	rowNo int
}

// NewPoint creates a point bound to the given row.
func NewPoint(ts *Series, rowNo int) (*Point, error) {
	if rowNo < 0 || rowNo >= ts.Len() {
		return nil, fmt.Errorf("%w: row %d of %d", errs.ErrRowOutOfRange, rowNo, ts.Len())
	}

	return &Point{ts: ts, rowNo: rowNo}, nil
}

// NewPointAt creates a point bound to the row holding the given date code,
// resolved with an exact-match lookup.
func NewPointAt(ts *Series, date int64) (*Point, error) {
	row, err := ts.RowNo(date, BiasExact)
	if err != nil {
		return nil, err
	}

	return &Point{ts: ts, rowNo: row}, nil
}

// Series returns the owning series.
func (p *Point) Series() *Series {
	return p.ts
}

// RowNo returns the bound row index.
func (p *Point) RowNo() int {
	return p.rowNo
}

// SetRow re-binds the point to another row. All derived fields follow; no
// data is moved or copied. An out-of-range row fails with
// errs.ErrRowOutOfRange.
func (p *Point) SetRow(rowNo int) error {
	if rowNo < 0 || rowNo >= p.ts.Len() {
		return fmt.Errorf("%w: row %d of %d", errs.ErrRowOutOfRange, rowNo, p.ts.Len())
	}
	p.rowNo = rowNo

	return nil
}

// Date returns the date code at the bound row.
func (p *Point) Date() int64 {
	return p.ts.Dates[p.rowNo]
}

// DateString returns the bound date rendered as a string.
func (p *Point) DateString() (string, error) {
	return p.ts.FormatDate(p.Date())
}

// Time returns the bound date decoded to time.Time.
func (p *Point) Time() (time.Time, error) {
	return datecode.Decode(p.Date(), p.ts.Frequency)
}

// Values returns the value row as a live slice view. Writes through the
// returned slice mutate the series directly.
func (p *Point) Values() []float64 {
	return p.ts.Values.Row(p.rowNo)
}

// columnIndex resolves a column name to its index on every access rather
// than caching the mapping, so renamed or reordered columns are picked up.
func (p *Point) columnIndex(column string) (int, error) {
	for i, name := range p.ts.Columns {
		if name == column {
			if i >= p.ts.Values.Cols() {
				break
			}
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown column %q in series %q", column, p.ts.Key)
}

// Get returns the value of the named column at the bound row.
func (p *Point) Get(column string) (float64, error) {
	idx, err := p.columnIndex(column)
	if err != nil {
		return 0, err
	}

	return p.ts.Values.At(p.rowNo, idx), nil
}

// Set writes v into the named column at the bound row, mutating the series
// directly.
func (p *Point) Set(column string, v float64) error {
	idx, err := p.columnIndex(column)
	if err != nil {
		return err
	}
	p.ts.Values.Set(p.rowNo, idx, v)

	return nil
}

// ToMap returns the point as a map holding the row number, the date code,
// and one entry per named column (or a "values" entry when the series is
// unnamed).
func (p *Point) ToMap() map[string]any {
	out := map[string]any{
		"row_no": p.rowNo,
		"date":   p.Date(),
	}

	values := p.Values()
	if len(p.ts.Columns) == len(values) {
		for i, column := range p.ts.Columns {
			out[column] = values[i]
		}
	} else {
		out["values"] = append([]float64(nil), values...)
	}

	return out
}

func (p *Point) String() string {
	date, err := p.DateString()
	if err != nil {
		date = fmt.Sprintf("%d", p.Date())
	}

	values := p.Values()
	var rendered string
	if len(p.ts.Columns) == len(values) {
		parts := make([]string, len(values))
		for i, column := range p.ts.Columns {
			parts[i] = fmt.Sprintf("%s: %g", column, values[i])
		}
		rendered = strings.Join(parts, ", ")
	} else {
		rendered = fmt.Sprintf("%g", values)
	}

	return fmt.Sprintf("<Point: row_no: %d, date: %s, %s />", p.rowNo, date, rendered)
}
