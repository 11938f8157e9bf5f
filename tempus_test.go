package tempus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/series"
)

// TestNewSeries verifies construction from raw date codes
func TestNewSeries(t *testing.T) {
	ts, err := NewSeries("cpu.usage", FreqDay,
		[]int64{738884, 738885, 738886},
		[][]float64{{1, 10}, {2, 20}, {3, 30}},
		"usage", "capacity")

	require.NoError(t, err)
	require.Equal(t, 3, ts.Len())
	require.Equal(t, []string{"usage", "capacity"}, ts.Columns)
	require.True(t, ts.EndOfPeriod)
}

// TestNewSeriesColumnMismatch verifies the name count is checked
func TestNewSeriesColumnMismatch(t *testing.T) {
	_, err := NewSeries("x", FreqDay,
		[]int64{738884},
		[][]float64{{1, 2}},
		"only-one")

	require.ErrorIs(t, err, errs.ErrColumnMismatch)
}

// TestFromTimes verifies time.Time values are encoded per frequency
func TestFromTimes(t *testing.T) {
	times := []time.Time{
		time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 26, 0, 0, 0, 0, time.UTC),
	}

	ts, err := FromTimes("daily", FreqDay, times, [][]float64{{1}, {2}})
	require.NoError(t, err)
	require.Equal(t, int64(738879), ts.Dates[0])
	require.Equal(t, ts.Dates[0]+1, ts.Dates[1])

	hourly, err := FromTimes("hourly", FreqHour, times, [][]float64{{1}, {2}})
	require.NoError(t, err)
	require.Equal(t, times[0].Unix(), hourly.Dates[0])
}

// TestFromTimesLengthMismatch verifies times and rows must align
func TestFromTimesLengthMismatch(t *testing.T) {
	times := []time.Time{time.Now().UTC()}

	_, err := FromTimes("x", FreqDay, times, [][]float64{{1}, {2}})
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

// TestRowLookupThroughFacade exercises a biased lookup on a constructed series
func TestRowLookupThroughFacade(t *testing.T) {
	// Friday 2023-12-22, then Monday 2023-12-25: a weekend gap.
	ts, err := NewSeries("gap", FreqDay,
		[]int64{738876, 738879},
		[][]float64{{1}, {2}})
	require.NoError(t, err)

	row, err := ts.RowNo(738877, series.BiasBefore)
	require.NoError(t, err)
	require.Equal(t, 0, row)

	row, err = ts.RowNo(738877, series.BiasAfter)
	require.NoError(t, err)
	require.Equal(t, 1, row)
}

// TestSeriesID verifies the key hash is stable and key-sensitive
func TestSeriesID(t *testing.T) {
	id := SeriesID("cpu.usage")
	require.NotZero(t, id)
	require.Equal(t, id, SeriesID("cpu.usage"))
	require.NotEqual(t, id, SeriesID("cpu.usage2"))
}
