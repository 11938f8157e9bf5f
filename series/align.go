package series

import (
	"fmt"
	"sort"

	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/internal/vector"
)

// Pad returns a pointer to v, for use as the pad argument of Combine.
func Pad(v float64) *float64 {
	return &v
}

// CommonLength trims every input to the length of the shortest, removing rows
// from the tail of the underlying arrays. Series ordered newest-first thereby
// lose their oldest rows. The originals are untouched; clones are returned.
func CommonLength(tss ...*Series) []*Series {
	minLen := -1
	for _, ts := range tss {
		if minLen < 0 || ts.Len() < minLen {
			minLen = ts.Len()
		}
	}

	out := make([]*Series, len(tss))
	for i, ts := range tss {
		out[i] = ts.Trunc(0, minLen, true)
	}

	return out
}

func columnCheck(a, b *Series) error {
	if a.Values.Cols() != b.Values.Cols() {
		return fmt.Errorf("%w: %d vs %d", errs.ErrColumnMismatch, a.Values.Cols(), b.Values.Cols())
	}

	return nil
}

// Combine concatenates the value columns of the receiver and the given series
// into one new series over a single shared date axis. The receiver's header
// wins; column names are concatenated only when every input is fully named.
//
// When discard is true every input is first trimmed to common length and the
// rows are aligned purely by position. When discard is false the lengths must
// already agree, unless pad is non-nil, in which case shorter series are
// padded at the tail with pad-valued rows reusing the longest series's date
// codes for those positions. Mismatched lengths with no pad fail with
// errs.ErrLengthMismatch.
func (s *Series) Combine(others []*Series, discard bool, pad *float64) (*Series, error) {
	all := make([]*Series, 0, len(others)+1)
	all = append(all, s.Clone())
	for _, ts := range others {
		all = append(all, ts.Clone())
	}

	if discard {
		all = CommonLength(all...)
	} else if err := padToLongest(all, pad); err != nil {
		return nil, err
	}

	values := make([]*vector.Matrix, len(all))
	for i, ts := range all {
		values[i] = ts.Values
	}

	// merged names must be computed before the receiver's matrix is widened,
	// or the name-count guard inside sees the combined column count
	merged := mergedColumns(all)

	out := all[0]
	out.Values = vector.HStack(values...)
	out.Columns = merged

	return out, nil
}

// padToLongest extends every shorter series to the longest length, in place
// on the (already cloned) inputs. With a nil pad any length difference is an
// error.
func padToLongest(all []*Series, pad *float64) error {
	longest := all[0]
	for _, ts := range all[1:] {
		if ts.Len() > longest.Len() {
			longest = ts
		}
	}

	for _, ts := range all {
		if ts.Len() == longest.Len() {
			continue
		}
		if pad == nil {
			return fmt.Errorf("%w: %d vs %d rows", errs.ErrLengthMismatch, ts.Len(), longest.Len())
		}

		padRow := make([]float64, ts.Values.Cols())
		for i := range padRow {
			padRow[i] = *pad
		}

		for row := ts.Len(); row < longest.Len(); row++ {
			ts.Dates = append(ts.Dates, longest.Dates[row])
			ts.Values.AppendRow(padRow)
		}
	}

	return nil
}

// mergedColumns concatenates column names when every input names all of its
// columns; otherwise the combined series is unnamed.
func mergedColumns(all []*Series) []string {
	var merged []string
	for _, ts := range all {
		if len(ts.Columns) != ts.Values.Cols() {
			return nil
		}
		merged = append(merged, ts.Columns...)
	}

	return merged
}

// Add returns the element-wise sum of two series of equal column
// dimensionality; mismatched dimensionality fails with errs.ErrColumnMismatch
// regardless of match.
//
// With match true the two date sequences must be identical (same codes, same
// order) or the call fails with errs.ErrDateMismatch, and the sum is plain
// positional addition. With match false the result covers exactly the dates
// present in both series, in date order following the receiver's direction;
// dates present in only one input are excluded. Unsorted inputs with match
// false are a precondition violation with an undefined result.
func (s *Series) Add(other *Series, match bool) (*Series, error) {
	if err := columnCheck(s, other); err != nil {
		return nil, err
	}

	if match {
		if !s.DatesMatch(other) {
			return nil, fmt.Errorf("%w: series %q and %q", errs.ErrDateMismatch, s.Key, other.Key)
		}

		out := s.Clone()
		out.Values = s.Values.Add(other.Values)

		return out, nil
	}

	otherRows := make(map[int64]int, other.Len())
	for i, code := range other.Dates {
		otherRows[code] = i
	}

	type pair struct {
		date     int64
		selfRow  int
		otherRow int
	}

	var pairs []pair
	for i, code := range s.Dates {
		if j, ok := otherRows[code]; ok {
			pairs = append(pairs, pair{date: code, selfRow: i, otherRow: j})
		}
	}

	descending := s.Direction() == Descending
	sort.Slice(pairs, func(i, j int) bool {
		if descending {
			return pairs[i].date > pairs[j].date
		}

		return pairs[i].date < pairs[j].date
	})

	dates := make([]int64, len(pairs))
	values := vector.New(len(pairs), s.Values.Cols())
	for i, p := range pairs {
		dates[i] = p.date
		dst := values.Row(i)
		a := s.Values.Row(p.selfRow)
		b := other.Values.Row(p.otherRow)
		for c := range dst {
			dst[c] = a[c] + b[c]
		}
	}

	out := s.Clone()
	out.Dates = dates
	out.Values = values

	return out, nil
}

// Extend appends the rows of other whose dates are absent from the receiver,
// in place. With overlay true, rows whose dates coincide are additionally
// overwritten with other's values; with overlay false coinciding rows are
// left untouched. The result is resorted into the receiver's prevailing
// direction. Both series must share column dimensionality and frequency;
// the frequency is assumed, not checked. When other carries dates that
// duplicate each other, the extend completes and errs.ErrDuplicateDates is
// reported.
func (s *Series) Extend(other *Series, overlay bool) error {
	if err := columnCheck(s, other); err != nil {
		return err
	}

	descending := s.Direction() == Descending

	existing := make(map[int64]int, s.Len())
	for i, code := range s.Dates {
		existing[code] = i
	}

	for i, code := range other.Dates {
		if row, ok := existing[code]; ok {
			if overlay {
				copy(s.Values.Row(row), other.Values.Row(i))
			}
			continue
		}

		s.Dates = append(s.Dates, code)
		s.Values.AppendRow(other.Values.Row(i))
	}

	// appended rows land at the tail regardless of date, so a real sort is
	// required rather than a direction flip; a duplicate-date warning from
	// the completed sort is passed on
	return s.SortByDate(descending, true)
}

// Replace substitutes other's value rows into a copy of the receiver at every
// date of other that exists in the receiver. With match true, any date of
// other that is absent fails with errs.ErrDateNotFound; with match false
// absent dates are silently ignored. Dates are never added or removed.
func (s *Series) Replace(other *Series, match bool) (*Series, error) {
	if err := columnCheck(s, other); err != nil {
		return nil, err
	}

	out := s.Clone()

	rows := make(map[int64]int, out.Len())
	for i, code := range out.Dates {
		rows[code] = i
	}

	for i, code := range other.Dates {
		row, ok := rows[code]
		if !ok {
			if match {
				return nil, fmt.Errorf("%w: date %d in series %q", errs.ErrDateNotFound, code, s.Key)
			}
			continue
		}

		copy(out.Values.Row(row), other.Values.Row(i))
	}

	return out, nil
}
