package series

import (
	"fmt"
	"sort"

	"github.com/chronolab/tempus/errs"
)

// Order describes the detected date order of a series.
type Order int8

const (
	// Descending means a lower row index holds a later date.
	Descending Order = -1
	// Degenerate means the series has fewer than two rows, so no order can
	// be derived.
	Degenerate Order = 0
	// Ascending means a lower row index holds an earlier date.
	Ascending Order = 1
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "degenerate"
	}
}

// Direction derives the date order by comparing the endpoint codes. It does
// not verify monotonicity of the interior rows.
func (s *Series) Direction() Order {
	if s.Len() < 2 {
		return Degenerate
	}
	if s.Dates[0] < s.Dates[s.Len()-1] {
		return Ascending
	}

	return Descending
}

// Reverse flips the row order of both dates and values in place.
func (s *Series) Reverse() {
	for i, j := 0, len(s.Dates)-1; i < j; i, j = i+1, j-1 {
		s.Dates[i], s.Dates[j] = s.Dates[j], s.Dates[i]
	}
	s.Values.ReverseRows()
}

// SortByDate puts the series into date order, in place. With descending true
// the result runs newest to oldest.
//
// When force is false, the current direction is derived from the endpoints:
// a series already in the requested order is left untouched, and one in the
// opposite order is flipped with the cheaper Reverse. When force is true a
// full stable sort by date is performed, carrying value rows along.
//
// A forced sort that encounters duplicate date codes still completes, but
// reports them by returning errs.ErrDuplicateDates; ordering among duplicate
// rows is preserved by sort stability. Duplicates are only scanned for on the
// forced path, since that is the only path where they affect ordering.
func (s *Series) SortByDate(descending, force bool) error {
	if !force {
		dir := s.Direction()
		switch {
		case !descending && dir == Ascending:
		case descending && dir == Descending:
		case dir == Degenerate:
		default:
			s.Reverse()
		}

		return nil
	}

	perm := make([]int, s.Len())
	for i := range perm {
		perm[i] = i
	}

	sort.SliceStable(perm, func(i, j int) bool {
		if descending {
			return s.Dates[perm[i]] > s.Dates[perm[j]]
		}

		return s.Dates[perm[i]] < s.Dates[perm[j]]
	})

	sorted := make([]int64, len(perm))
	for i, p := range perm {
		sorted[i] = s.Dates[p]
	}

	s.Dates = sorted
	s.Values = s.Values.Permute(perm)

	duplicates := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			duplicates++
		}
	}
	if duplicates > 0 {
		return fmt.Errorf("%w: %d duplicated rows in series %q", errs.ErrDuplicateDates, duplicates, s.Key)
	}

	return nil
}
