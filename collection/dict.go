package collection

import (
	"fmt"
	"sort"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/series"
)

// SeriesDict is a group of series keyed by ticker or any other identifier.
type SeriesDict map[string]*series.Series

// NewSeriesDict builds a dict from tss, keyed by each series' Key.
// Every series must carry a non-empty key.
func NewSeriesDict(tss ...*series.Series) (SeriesDict, error) {
	return SeriesList(tss).AsDict()
}

// Keys returns the dict keys in sorted order. Map iteration order is not
// stable, so every order-sensitive operation goes through this.
func (d SeriesDict) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// MinDate returns the chronologically earliest start date in the group and
// the key holding it.
func (d SeriesDict) MinDate() (time.Time, string, error) {
	return d.spanDate(true)
}

// MaxDate returns the chronologically latest end date in the group and the
// key holding it. Ties go to whichever qualifying key sorts first.
func (d SeriesDict) MaxDate() (time.Time, string, error) {
	return d.spanDate(false)
}

func (d SeriesDict) spanDate(earliest bool) (time.Time, string, error) {
	var best time.Time
	bestKey := ""
	found := false

	for _, key := range d.Keys() {
		ts := d[key]
		if ts == nil || ts.Len() == 0 {
			continue
		}

		code := ts.EndDate()
		if earliest {
			code = ts.StartDate()
		}
		t, err := datecode.Decode(code, ts.Frequency)
		if err != nil {
			return time.Time{}, "", err
		}

		if !found || (earliest && t.Before(best)) || (!earliest && t.After(best)) {
			best = t
			bestKey = key
			found = true
		}
	}

	if !found {
		return time.Time{}, "", errs.ErrEmptyCollection
	}

	return best, bestKey, nil
}

// Longest returns the key and row count of the longest series.
func (d SeriesDict) Longest() (string, int, error) {
	return d.extremeLen(func(n, best int) bool { return n > best })
}

// Shortest returns the key and row count of the shortest series.
func (d SeriesDict) Shortest() (string, int, error) {
	return d.extremeLen(func(n, best int) bool { return n < best })
}

func (d SeriesDict) extremeLen(better func(n, best int) bool) (string, int, error) {
	bestKey := ""
	bestLen := 0
	found := false

	for _, key := range d.Keys() {
		ts := d[key]
		if ts == nil {
			continue
		}
		if !found || better(ts.Len(), bestLen) {
			bestKey = key
			bestLen = ts.Len()
			found = true
		}
	}

	if !found {
		return "", 0, errs.ErrEmptyCollection
	}

	return bestKey, bestLen, nil
}

// GetValues returns each selected member's row values on date, aligned with
// the returned keys. Passing no keys selects every key in sorted order; an
// explicit key list controls both selection and column order. A member
// without the date contributes a nil row unless strict is set.
func (d SeriesDict) GetValues(date int64, strict bool, keys ...string) ([][]float64, []string, error) {
	selected, err := d.selectKeys(keys)
	if err != nil {
		return nil, nil, err
	}

	values := make([][]float64, len(selected))
	for i, key := range selected {
		ts := d[key]
		row := ts.LookupRow(date, series.BiasExact)
		if row == series.MissingRow {
			if strict {
				return nil, nil, fmt.Errorf("%w: %q has no value on %d", errs.ErrDateNotFound, key, date)
			}

			continue
		}
		values[i] = ts.Values.Row(row)
	}

	return values, selected, nil
}

// Combine folds the selected members into one multi-column series, in key
// order, and returns the keys that ordered the fold. Passing no keys folds
// every member in sorted-key order.
func (d SeriesDict) Combine(discard bool, pad *float64, keys ...string) (*series.Series, []string, error) {
	selected, err := d.selectKeys(keys)
	if err != nil {
		return nil, nil, err
	}
	if len(selected) == 0 {
		return nil, nil, errs.ErrEmptyCollection
	}

	list := make(SeriesList, len(selected))
	for i, key := range selected {
		list[i] = d[key]
	}

	combined, err := list.Combine(discard, pad)
	if err != nil {
		return nil, nil, err
	}

	return combined, selected, nil
}

func (d SeriesDict) selectKeys(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return d.Keys(), nil
	}

	for _, key := range keys {
		if _, ok := d[key]; !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrMissingKey, key)
		}
	}

	return keys, nil
}

// Clone returns a deep copy of the dict and every series in it.
func (d SeriesDict) Clone() SeriesDict {
	out := make(SeriesDict, len(d))
	for key, ts := range d {
		if ts != nil {
			out[key] = ts.Clone()
		}
	}

	return out
}
