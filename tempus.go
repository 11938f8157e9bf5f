// Package tempus provides date-aligned time series: numeric observation
// matrices bound row-for-row to a sequence of date codes, with frequency
// conversion, date-based alignment, and a compact binary snapshot format.
//
// Dates are stored as int64 codes. Day-or-coarser frequencies use proleptic
// Gregorian ordinals (0001-01-01 = 1); sub-day frequencies use Unix-second
// timestamps. All calendar math is UTC.
//
// # Basic Usage
//
// Creating a daily series and converting it to monthly:
//
//	import "github.com/chronolab/tempus"
//
//	ts, _ := tempus.FromTimes("cpu.usage", tempus.FreqDay, times, rows, "usage")
//
//	monthly, _ := ts.Convert(tempus.FreqMonth)
//
// Looking up rows by date, tolerating gaps:
//
//	row, err := ts.RowNo(date, series.BiasBefore)
//
// Persisting and restoring:
//
//	data, _ := snapshot.Encode(ts, snapshot.WithCompression(format.CompressionZstd))
//	ts2, _ := snapshot.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level constructors around the series
// package, plus re-exported frequency constants. For the full API use the
// series, collection, and snapshot packages directly.
package tempus

import (
	"fmt"
	"time"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/internal/hash"
	"github.com/chronolab/tempus/internal/vector"
	"github.com/chronolab/tempus/series"
)

// Frequency re-exports datecode.Frequency for convenience.
type Frequency = datecode.Frequency

// Re-exported frequency constants, ordered finest to coarsest.
const (
	FreqSecond  = datecode.FreqSecond
	FreqMinute  = datecode.FreqMinute
	FreqHour    = datecode.FreqHour
	FreqDay     = datecode.FreqDay
	FreqWeek    = datecode.FreqWeek
	FreqMonth   = datecode.FreqMonth
	FreqQuarter = datecode.FreqQuarter
	FreqYear    = datecode.FreqYear
)

// NewSeries creates a series from raw date codes and value rows.
//
// Dates must already be encoded for freq: ordinals for day-or-coarser
// frequencies, Unix-second timestamps below that. Each row of rows becomes
// one matrix row; all rows must share the width of the first. Column names
// are optional, but when given their count must equal the row width.
//
// The series is created end-of-period. Flip EndOfPeriod directly for
// start-of-period data.
func NewSeries(key string, freq Frequency, dates []int64, rows [][]float64, columns ...string) (*series.Series, error) {
	values := vector.FromRows(rows)

	ts, err := series.New(key, freq, true, dates, values)
	if err != nil {
		return nil, err
	}

	if len(columns) > 0 {
		if len(columns) != values.Cols() {
			return nil, fmt.Errorf("%w: %d names for %d columns", errs.ErrColumnMismatch, len(columns), values.Cols())
		}
		ts.Columns = columns
	}

	return ts, nil
}

// FromTimes creates a series from time.Time values, encoding each into the
// date code space of freq. Times and rows must have equal length.
func FromTimes(key string, freq Frequency, times []time.Time, rows [][]float64, columns ...string) (*series.Series, error) {
	if len(times) != len(rows) {
		return nil, fmt.Errorf("%w: %d times, %d rows", errs.ErrLengthMismatch, len(times), len(rows))
	}

	dates := make([]int64, len(times))
	for i, t := range times {
		dates[i] = datecode.Encode(t, freq)
	}

	return NewSeries(key, freq, dates, rows, columns...)
}

// SeriesID returns the 64-bit xxHash64 of a series key, for callers that
// index series by hash rather than by string.
func SeriesID(key string) uint64 {
	return hash.SumString(key)
}
