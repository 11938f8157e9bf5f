package series

import (
	"fmt"
	"sort"

	"github.com/chronolab/tempus/errs"
)

// Bias selects the failure policy of a date lookup when the target date is
// not present.
type Bias int8

const (
	// BiasExact requires an exact match and fails with errs.ErrDateNotFound.
	BiasExact Bias = 0
	// BiasAfter returns the closest available date after the target, in
	// calendar time.
	BiasAfter Bias = 1
	// BiasBefore returns the closest available date before the target, in
	// calendar time.
	BiasBefore Bias = -1
)

// MissingRow is the sentinel returned by LookupRow when no row qualifies.
const MissingRow = -1

// RowNo locates the row holding the given date code by binary search.
//
// The series must be sorted; an unsorted series yields an undefined result.
// For descending series the bias semantics are transposed internally, so
// "after" always means later in calendar time regardless of memory order.
//
// BiasExact fails with errs.ErrDateNotFound when the date is absent.
// BiasAfter fails with errs.ErrOutOfRange when the target exceeds the latest
// date; BiasBefore fails with errs.ErrOutOfRange when the target precedes the
// earliest date.
func (s *Series) RowNo(date int64, bias Bias) (int, error) {
	if bias != BiasExact && bias != BiasAfter && bias != BiasBefore {
		return MissingRow, fmt.Errorf("invalid bias: %d", bias)
	}

	n := s.Len()
	if n == 0 {
		return MissingRow, s.lookupErr(date, bias)
	}

	var row int
	if s.Direction() == Descending {
		row = searchDescending(s.Dates, date, bias)
	} else {
		row = searchAscending(s.Dates, date, bias)
	}

	if row == MissingRow {
		return MissingRow, s.lookupErr(date, bias)
	}

	return row, nil
}

// LookupRow is the no-error variant of RowNo: it returns MissingRow instead
// of an error when the lookup fails.
func (s *Series) LookupRow(date int64, bias Bias) int {
	row, err := s.RowNo(date, bias)
	if err != nil {
		return MissingRow
	}

	return row
}

// ClosestDate returns the date code at the row located by RowNo. It is the
// nearest-match companion of RowNo for callers that want the date rather
// than the position.
func (s *Series) ClosestDate(date int64, bias Bias) (int64, error) {
	row, err := s.RowNo(date, bias)
	if err != nil {
		return 0, err
	}

	return s.Dates[row], nil
}

func (s *Series) lookupErr(date int64, bias Bias) error {
	kind := errs.ErrDateNotFound
	if bias != BiasExact {
		kind = errs.ErrOutOfRange
	}

	return fmt.Errorf("%w: date %d in series %q", kind, date, s.Key)
}

// searchAscending assumes dates sorted ascending.
func searchAscending(dates []int64, target int64, bias Bias) int {
	n := len(dates)

	switch bias {
	case BiasAfter:
		// smallest index with dates[i] >= target
		idx := sort.Search(n, func(i int) bool { return dates[i] >= target })
		if idx == n {
			return MissingRow
		}
		return idx

	case BiasBefore:
		// largest index with dates[i] <= target
		idx := sort.Search(n, func(i int) bool { return dates[i] > target }) - 1
		if idx < 0 {
			return MissingRow
		}
		return idx

	default:
		idx := sort.Search(n, func(i int) bool { return dates[i] >= target })
		if idx == n || dates[idx] != target {
			return MissingRow
		}
		return idx
	}
}

// searchDescending assumes dates sorted descending; calendar bias maps to the
// mirrored memory side.
func searchDescending(dates []int64, target int64, bias Bias) int {
	n := len(dates)

	switch bias {
	case BiasAfter:
		// largest index with dates[i] >= target
		idx := sort.Search(n, func(i int) bool { return dates[i] < target }) - 1
		if idx < 0 {
			return MissingRow
		}
		return idx

	case BiasBefore:
		// smallest index with dates[i] <= target
		idx := sort.Search(n, func(i int) bool { return dates[i] <= target })
		if idx == n {
			return MissingRow
		}
		return idx

	default:
		idx := sort.Search(n, func(i int) bool { return dates[i] <= target })
		if idx == n || dates[idx] != target {
			return MissingRow
		}
		return idx
	}
}
