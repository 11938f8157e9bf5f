// Package collection provides aggregate containers over series: SeriesList
// for ordered groups and SeriesDict for keyed groups. Both answer group-wide
// questions (date span, values on a date) and fold their members into a
// single multi-column series through the alignment operations.
package collection

import (
	"fmt"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/series"
)

// SeriesList is an ordered group of series of common interest.
type SeriesList []*series.Series

// MinDate returns the chronologically earliest start date across the group.
// Series of mixed frequencies are compared in calendar time. Empty series
// are skipped; an empty group fails ErrEmptyCollection.
func (l SeriesList) MinDate() (time.Time, error) {
	return l.spanDate(true)
}

// MaxDate returns the chronologically latest end date across the group.
func (l SeriesList) MaxDate() (time.Time, error) {
	return l.spanDate(false)
}

func (l SeriesList) spanDate(earliest bool) (time.Time, error) {
	var best time.Time
	found := false

	for _, ts := range l {
		if ts == nil || ts.Len() == 0 {
			continue
		}

		code := ts.EndDate()
		if earliest {
			code = ts.StartDate()
		}
		t, err := datecode.Decode(code, ts.Frequency)
		if err != nil {
			return time.Time{}, err
		}

		if !found || (earliest && t.Before(best)) || (!earliest && t.After(best)) {
			best = t
			found = true
		}
	}

	if !found {
		return time.Time{}, errs.ErrEmptyCollection
	}

	return best, nil
}

// GetValues returns each member's row values on date, in list order. A
// member without the date contributes a nil row, unless strict is set, in
// which case the lookup fails ErrDateNotFound naming the member.
func (l SeriesList) GetValues(date int64, strict bool) ([][]float64, error) {
	values := make([][]float64, len(l))

	for i, ts := range l {
		row := ts.LookupRow(date, series.BiasExact)
		if row == series.MissingRow {
			if strict {
				return nil, fmt.Errorf("%w: series %d has no value on %d", errs.ErrDateNotFound, i, date)
			}

			continue
		}
		values[i] = ts.Values.Row(row)
	}

	return values, nil
}

// Combine folds the group into one multi-column series, left to right.
// See (*series.Series).Combine for the discard and pad semantics. A group
// of one returns a clone of its only member.
func (l SeriesList) Combine(discard bool, pad *float64) (*series.Series, error) {
	if len(l) == 0 {
		return nil, errs.ErrEmptyCollection
	}
	if len(l) == 1 {
		return l[0].Clone(), nil
	}

	return l[0].Combine(l[1:], discard, pad)
}

// Clone returns a deep copy of the list and every series in it.
func (l SeriesList) Clone() SeriesList {
	out := make(SeriesList, len(l))
	for i, ts := range l {
		if ts != nil {
			out[i] = ts.Clone()
		}
	}

	return out
}

// AsDict converts the list into a SeriesDict keyed by each series' Key.
// Every member must carry a non-empty key.
func (l SeriesList) AsDict() (SeriesDict, error) {
	d := make(SeriesDict, len(l))

	for i, ts := range l {
		if ts == nil {
			continue
		}
		if ts.Key == "" {
			return nil, fmt.Errorf("%w: series %d", errs.ErrMissingKey, i)
		}
		d[ts.Key] = ts
	}

	return d, nil
}
