// Package series implements the date-aligned series engine: a Series owns one
// date-code array and one value matrix with rows aligned 1:1, and exposes
// date-indexed lookup, ordering management, frequency conversion, and
// multi-series alignment on top of them.
//
// All operations assume finalized arrays: equal row counts and date codes in
// the code space implied by the frequency. Operations documented as "in
// place" mutate the series directly; the engine provides no locking.
package series

import (
	"fmt"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/internal/vector"
)

// NoDate is the sentinel for an absent endpoint in date-based slicing.
const NoDate int64 = -1 << 63

// Series holds one date-keyed value series. Dates and values are kept in
// separate arrays whose first dimensions match. Direction (ascending or
// descending dates) is a derived property, not a structural invariant:
// nearest-match search and frequency conversion assume the series is sorted
// in a single direction.
type Series struct {
	// Key is a free-form label for the series.
	Key string

	// Frequency determines the date-code space: ordinals for day-or-coarser
	// frequencies, timestamps for sub-day ones.
	Frequency datecode.Frequency

	// EndOfPeriod selects the chronologically last row of a bucket as its
	// representative during frequency conversion; false selects the first.
	EndOfPeriod bool

	// Columns optionally names the value columns. Either empty or exactly
	// one name per value column.
	Columns []string

	// Dates holds one integer date code per row.
	Dates []int64

	// Values holds the value rows. Values.Rows() == len(Dates).
	Values *vector.Matrix
}

// Header carries the non-array attributes of a series. External serializers
// combine it with Items to render a series.
type Header struct {
	Key         string
	Columns     []string
	Frequency   datecode.Frequency
	EndOfPeriod bool
}

// Item is one (date code, value row) pair produced by Items.
type Item struct {
	Date   int64
	Values []float64
}

// New creates a finalized series after validating the length invariant, the
// frequency, and (for ordinal frequencies) the date-code space. The dates
// slice and values matrix are owned by the returned series.
func New(key string, freq datecode.Frequency, eop bool, dates []int64, values *vector.Matrix) (*Series, error) {
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidFrequency, freq)
	}
	if values == nil {
		values = vector.New(len(dates), 1)
	}
	if len(dates) != values.Rows() {
		return nil, fmt.Errorf("%w: %d dates, %d value rows", errs.ErrLengthMismatch, len(dates), values.Rows())
	}

	if freq.Kind() == datecode.KindOrdinal {
		for _, code := range dates {
			if code < 1 || code > datecode.MaxOrdinal {
				return nil, fmt.Errorf("%w: %d is not an ordinal date code", errs.ErrTypeMismatch, code)
			}
		}
	}

	return &Series{
		Key:         key,
		Frequency:   freq,
		EndOfPeriod: eop,
		Dates:       dates,
		Values:      values,
	}, nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.Dates)
}

// Shape returns the value matrix shape.
func (s *Series) Shape() (rows, cols int) {
	return s.Values.Rows(), s.Values.Cols()
}

// Lengths returns the lengths of the date series and the value series
// separately, so a length mismatch can be observed before finalization.
func (s *Series) Lengths() (dates, values int) {
	return len(s.Dates), s.Values.Rows()
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	out := &Series{
		Key:         s.Key,
		Frequency:   s.Frequency,
		EndOfPeriod: s.EndOfPeriod,
		Dates:       append([]int64(nil), s.Dates...),
		Values:      s.Values.Clone(),
	}
	if s.Columns != nil {
		out.Columns = append([]string(nil), s.Columns...)
	}

	return out
}

// Header returns the non-array attributes of the series.
func (s *Series) Header() Header {
	return Header{
		Key:         s.Key,
		Columns:     append([]string(nil), s.Columns...),
		Frequency:   s.Frequency,
		EndOfPeriod: s.EndOfPeriod,
	}
}

// Items returns the series as (date, value row) pairs. Value rows are copies.
func (s *Series) Items() []Item {
	items := make([]Item, s.Len())
	for i := range items {
		items[i] = Item{
			Date:   s.Dates[i],
			Values: append([]float64(nil), s.Values.Row(i)...),
		}
	}

	return items
}

// Trunc slices the series to rows [start, finish), clamping both bounds to
// the valid range. A negative finish means through the end. The receiver is
// modified in place unless clone is true, in which case a new series is
// returned and the receiver is untouched.
func (s *Series) Trunc(start, finish int, clone bool) *Series {
	target := s
	if clone {
		target = s.Clone()
	}

	n := target.Len()
	if finish < 0 || finish > n {
		finish = n
	}
	if start < 0 {
		start = 0
	}
	if start > finish {
		start = finish
	}

	target.Dates = target.Dates[start:finish:finish]
	target.Values = target.Values.Slice(start, finish)

	return target
}

// TruncDate slices the series by date, inclusive of both endpoints. An absent
// start (NoDate) means the chronological beginning; an absent finish means
// the chronological end. A start that is not present snaps forward to the
// next available date, a finish snaps backward to the previous one. Endpoints
// entirely outside the date range fail with errs.ErrOutOfRange.
//
// The receiver is modified in place unless clone is true.
func (s *Series) TruncDate(start, finish int64, clone bool) (*Series, error) {
	target := s
	if clone {
		target = s.Clone()
	}

	if start != NoDate && finish != NoDate && start > finish {
		start, finish = finish, start
	}

	wasDescending := target.Direction() == Descending
	if wasDescending {
		target.Reverse()
	}

	startRow := 0
	finishRow := target.Len() - 1

	var err error
	if start != NoDate {
		startRow, err = target.RowNo(start, BiasAfter)
		if err != nil {
			if wasDescending {
				target.Reverse()
			}
			return nil, err
		}
	}
	if finish != NoDate {
		finishRow, err = target.RowNo(finish, BiasBefore)
		if err != nil {
			if wasDescending {
				target.Reverse()
			}
			return nil, err
		}
	}

	target.Trunc(startRow, finishRow+1, false)

	if wasDescending {
		target.Reverse()
	}

	return target, nil
}

// StartDate returns the chronologically earliest date code.
func (s *Series) StartDate() int64 {
	if s.Direction() == Descending {
		return s.Dates[s.Len()-1]
	}

	return s.Dates[0]
}

// EndDate returns the chronologically latest date code.
func (s *Series) EndDate() int64 {
	if s.Direction() == Descending {
		return s.Dates[0]
	}

	return s.Dates[s.Len()-1]
}

// DateRange returns the earliest and latest date codes.
func (s *Series) DateRange() (start, end int64) {
	if s.Len() == 0 {
		return 0, 0
	}

	return s.StartDate(), s.EndDate()
}

// FormatDate renders a date code of this series as a string.
func (s *Series) FormatDate(code int64) (string, error) {
	return datecode.Format(code, s.Frequency)
}

// DateStrings returns all date codes rendered as strings, in row order.
func (s *Series) DateStrings() ([]string, error) {
	out := make([]string, s.Len())
	for i, code := range s.Dates {
		str, err := datecode.Format(code, s.Frequency)
		if err != nil {
			return nil, err
		}
		out[i] = str
	}

	return out, nil
}

// DateTimes returns all date codes decoded to time.Time, in row order.
func (s *Series) DateTimes() ([]time.Time, error) {
	out := make([]time.Time, s.Len())
	for i, code := range s.Dates {
		t, err := datecode.Decode(code, s.Frequency)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}

	return out, nil
}

// NativeDate converts t to the date-code space of this series.
func (s *Series) NativeDate(t time.Time) int64 {
	return datecode.Encode(t, s.Frequency)
}

// SetZeros replaces all values with zeros of the same shape, in place unless
// clone is true.
func (s *Series) SetZeros(clone bool) *Series {
	return s.setConst(0, clone)
}

// SetOnes replaces all values with ones of the same shape, in place unless
// clone is true.
func (s *Series) SetOnes(clone bool) *Series {
	return s.setConst(1, clone)
}

func (s *Series) setConst(v float64, clone bool) *Series {
	target := s
	if clone {
		target = s.Clone()
	}
	target.Values.Fill(v)

	return target
}

// GetDiffs returns the row-to-row differences, newer value minus older value.
// The result has one row fewer than the source; each difference is keyed on
// the newer of the two dates. Direction is preserved.
func (s *Series) GetDiffs() *Series {
	return s.rowDeltas(func(newer, older, out []float64) {
		for i := range out {
			out[i] = newer[i] - older[i]
		}
	})
}

// GetPcdiffs returns the row-to-row percentage differences,
// ((newer / older) - 1) * 100. Zero denominators are not guarded: the
// IEEE-754 infinite or NaN result propagates.
func (s *Series) GetPcdiffs() *Series {
	return s.rowDeltas(func(newer, older, out []float64) {
		for i := range out {
			out[i] = (newer[i]/older[i] - 1) * 100
		}
	})
}

func (s *Series) rowDeltas(delta func(newer, older, out []float64)) *Series {
	tmp := s.Clone()
	if tmp.Len() < 2 {
		return tmp.Trunc(0, 0, false)
	}

	dir := tmp.Direction()
	if dir == Ascending {
		tmp.Reverse()
	}

	n, cols := tmp.Shape()
	out := vector.New(n-1, cols)
	for i := 0; i < n-1; i++ {
		delta(tmp.Values.Row(i), tmp.Values.Row(i+1), out.Row(i))
	}

	tmp.Values = out
	tmp.Dates = tmp.Dates[:n-1]

	if dir == Ascending {
		tmp.Reverse()
	}

	return tmp
}

// DatesMatch reports whether both series have identical date sequences.
func (s *Series) DatesMatch(other *Series) bool {
	if len(s.Dates) != len(other.Dates) {
		return false
	}
	for i, d := range s.Dates {
		if d != other.Dates[i] {
			return false
		}
	}

	return true
}

// ValuesMatch reports whether both series have identical value matrices.
func (s *Series) ValuesMatch(other *Series) bool {
	return s.Values.Equal(other.Values)
}

// DateCount pairs a duplicated date code with its occurrence count.
type DateCount struct {
	Date  int64
	Count int
}

// DupedDates returns the date codes that occur more than once, with their
// counts. It is meant for locating faulty series.
func (s *Series) DupedDates() []DateCount {
	counts := make(map[int64]int, s.Len())
	for _, code := range s.Dates {
		counts[code]++
	}

	var duped []DateCount
	for _, code := range s.Dates {
		if counts[code] > 1 {
			duped = append(duped, DateCount{Date: code, Count: counts[code]})
			counts[code] = 0
		}
	}

	return duped
}

// Years summarizes the series into one value row per calendar year, keyed by
// year. The representative row follows EndOfPeriod.
func (s *Series) Years(includePartial bool) (map[int][]float64, error) {
	converted, err := s.Convert(datecode.FreqYear, WithPartial(includePartial))
	if err != nil {
		return nil, err
	}

	out := make(map[int][]float64, converted.Len())
	for _, item := range converted.Items() {
		t, err := datecode.Decode(item.Date, converted.Frequency)
		if err != nil {
			return nil, err
		}
		out[t.Year()] = item.Values
	}

	return out, nil
}

// Months summarizes the series into one value row per calendar month, keyed
// by "YYYY-MM". The representative row follows EndOfPeriod.
func (s *Series) Months(includePartial bool) (map[string][]float64, error) {
	converted, err := s.Convert(datecode.FreqMonth, WithPartial(includePartial))
	if err != nil {
		return nil, err
	}

	out := make(map[string][]float64, converted.Len())
	for _, item := range converted.Items() {
		t, err := datecode.Decode(item.Date, converted.Frequency)
		if err != nil {
			return nil, err
		}
		out[fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))] = item.Values
	}

	return out, nil
}

// String returns a multi-line description of the series header and shape.
func (s *Series) String() string {
	rows, cols := s.Shape()
	start, end := s.DateRange()

	var dateRange string
	if s.Len() > 0 {
		startStr, err := s.FormatDate(start)
		endStr, err2 := s.FormatDate(end)
		if err == nil && err2 == nil {
			dateRange = fmt.Sprintf("%s .. %s", startStr, endStr)
		}
	}

	return fmt.Sprintf(
		"<Series key=%q columns=%v frequency=%s daterange=[%s] end-of-period=%t shape=(%d, %d)>",
		s.Key, s.Columns, s.Frequency, dateRange, s.EndOfPeriod, rows, cols)
}
