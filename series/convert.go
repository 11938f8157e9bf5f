package series

import (
	"fmt"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/internal/options"
	"github.com/chronolab/tempus/internal/vector"
)

type convertConfig struct {
	includePartial bool
	weekday        time.Weekday
}

// ConvertOption configures a frequency conversion. Options that do not apply
// to the requested target frequency are ignored.
type ConvertOption = options.Option[*convertConfig]

// WithPartial controls whether a trailing bucket that is not
// calendar-complete is emitted. The default is true.
func WithPartial(include bool) ConvertOption {
	return options.NoError(func(c *convertConfig) {
		c.includePartial = include
	})
}

// WithWeekday sets the weekday a weekly bucket ends on. It is consulted only
// for weekly targets and ignored otherwise. The default is Sunday.
func WithWeekday(weekday time.Weekday) ConvertOption {
	return options.NoError(func(c *convertConfig) {
		c.weekday = weekday
	})
}

// Convert resamples the series to a coarser frequency, assigning every row to
// a calendar bucket of the target frequency and reducing each bucket to one
// representative row: the chronologically last when EndOfPeriod is true, the
// first otherwise. Representative rows keep their own observed date codes;
// no dates are invented for calendar gaps.
//
// Converting to the same frequency returns an unchanged copy. Converting to a
// finer frequency fails with errs.ErrUnsupportedConversion; no interpolation
// is performed. The series must be sorted in a single direction, which is
// preserved in the result.
func (s *Series) Convert(target datecode.Frequency, opts ...ConvertOption) (*Series, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidFrequency, target)
	}
	if target == s.Frequency {
		return s.Clone(), nil
	}
	if target < s.Frequency {
		return nil, fmt.Errorf("%w: %s to %s", errs.ErrUnsupportedConversion, s.Frequency, target)
	}

	cfg := &convertConfig{includePartial: true, weekday: time.Sunday}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	work := s.Clone()
	dir := work.Direction()
	if dir == Descending {
		work.Reverse()
	}

	n := work.Len()
	if n == 0 {
		work.Frequency = target
		return work, nil
	}

	keys := make([]int64, n)
	for i, code := range work.Dates {
		key, err := bucketKey(code, s.Frequency, target, cfg.weekday)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	var outDates []int64
	var reps []int
	runStart := 0
	for i := 1; i <= n; i++ {
		if i < n && keys[i] == keys[runStart] {
			continue
		}

		rep := i - 1
		if !s.EndOfPeriod {
			rep = runStart
		}

		code, err := outputCode(work.Dates[rep], s.Frequency, target)
		if err != nil {
			return nil, err
		}

		outDates = append(outDates, code)
		reps = append(reps, rep)
		runStart = i
	}

	if !cfg.includePartial {
		complete, err := trailingComplete(work.Dates[n-1], s.Frequency, target, cfg.weekday)
		if err != nil {
			return nil, err
		}
		if !complete {
			outDates = outDates[:len(outDates)-1]
			reps = reps[:len(reps)-1]
		}
	}

	values := vector.New(len(reps), work.Values.Cols())
	for i, rep := range reps {
		copy(values.Row(i), work.Values.Row(rep))
	}

	out := &Series{
		Key:         s.Key,
		Frequency:   target,
		EndOfPeriod: s.EndOfPeriod,
		Dates:       outDates,
		Values:      values,
	}
	if s.Columns != nil {
		out.Columns = append([]string(nil), s.Columns...)
	}

	if dir == Descending {
		out.Reverse()
	}

	return out, nil
}

// bucketKey maps a row's date code to its bucket under the target frequency.
// Bucket keys are monotone in the date code, so consecutive equal keys form
// one bucket in a sorted series.
func bucketKey(code int64, src, target datecode.Frequency, weekday time.Weekday) (int64, error) {
	switch target {
	case datecode.FreqMinute:
		return code - floorMod(code, 60), nil
	case datecode.FreqHour:
		return code - floorMod(code, 3600), nil
	}

	t, err := datecode.Decode(code, src)
	if err != nil {
		return 0, err
	}

	switch target {
	case datecode.FreqDay:
		return datecode.ToOrdinal(t), nil
	case datecode.FreqWeek:
		return datecode.WeekEnd(datecode.ToOrdinal(t), weekday), nil
	case datecode.FreqMonth:
		return int64(t.Year())*12 + int64(t.Month()), nil
	case datecode.FreqQuarter:
		return int64(t.Year())*4 + int64(int(t.Month())-1)/3, nil
	case datecode.FreqYear:
		return int64(t.Year()), nil
	default:
		return 0, fmt.Errorf("%w: target %s", errs.ErrUnsupportedConversion, target)
	}
}

// outputCode keeps the representative's observed code, re-encoding it as an
// ordinal when a sub-day series converts to a day-or-coarser target.
func outputCode(code int64, src, target datecode.Frequency) (int64, error) {
	if src.Kind() == datecode.KindTimestamp && target.Kind() == datecode.KindOrdinal {
		return datecode.ToOrdinal(datecode.FromTimestamp(code)), nil
	}

	return code, nil
}

// trailingComplete reports whether the bucket holding the last observed date
// is calendar-complete: whether data through the calendar end of the period
// was observed, judged at the granularity of the source frequency.
func trailingComplete(lastCode int64, src, target datecode.Frequency, weekday time.Weekday) (bool, error) {
	switch target {
	case datecode.FreqMinute:
		end := lastCode - floorMod(lastCode, 60) + 60
		return lastCode+stepSeconds(src) >= end, nil
	case datecode.FreqHour:
		end := lastCode - floorMod(lastCode, 3600) + 3600
		return lastCode+stepSeconds(src) >= end, nil
	case datecode.FreqDay:
		end := lastCode - floorMod(lastCode, 86400) + 86400
		return lastCode+stepSeconds(src) >= end, nil
	}

	t, err := datecode.Decode(lastCode, src)
	if err != nil {
		return false, err
	}

	ord := datecode.ToOrdinal(t)

	var endOrd int64
	switch target {
	case datecode.FreqWeek:
		endOrd = datecode.WeekEnd(ord, weekday)
	case datecode.FreqMonth:
		endOrd = datecode.MonthEnd(t.Year(), t.Month())
	case datecode.FreqQuarter:
		endOrd = datecode.QuarterEnd(t.Year(), t.Month())
	case datecode.FreqYear:
		endOrd = datecode.YearEnd(t.Year())
	default:
		return false, fmt.Errorf("%w: target %s", errs.ErrUnsupportedConversion, target)
	}

	return ord >= endOrd, nil
}

func stepSeconds(f datecode.Frequency) int64 {
	switch f {
	case datecode.FreqMinute:
		return 60
	case datecode.FreqHour:
		return 3600
	default:
		return 1
	}
}

func floorMod(a, m int64) int64 {
	return ((a % m) + m) % m
}
