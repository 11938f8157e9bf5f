package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronolab/tempus/errs"
)

func TestRowNoExact(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	row, err := ts.RowNo(jan1+1, BiasExact)
	require.NoError(t, err)
	require.Equal(t, 1, row)

	_, err = ts.RowNo(jan1+10, BiasExact)
	require.ErrorIs(t, err, errs.ErrDateNotFound)
}

func TestRowNoWeekendGap(t *testing.T) {
	// Friday 2023-12-22 and Monday 2023-12-25.
	friday := int64(738876)
	monday := int64(738879)
	saturday := friday + 1
	ts := newDailyAt(t, []int64{friday, monday}, 1, 2)

	_, err := ts.RowNo(saturday, BiasExact)
	require.ErrorIs(t, err, errs.ErrDateNotFound)

	row, err := ts.RowNo(saturday, BiasBefore)
	require.NoError(t, err)
	require.Equal(t, 0, row)

	row, err = ts.RowNo(saturday, BiasAfter)
	require.NoError(t, err)
	require.Equal(t, 1, row)
}

func TestRowNoBiasOnPresentDate(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	// A present date resolves to itself under any bias.
	for _, bias := range []Bias{BiasExact, BiasBefore, BiasAfter} {
		row, err := ts.RowNo(jan1+1, bias)
		require.NoError(t, err)
		require.Equal(t, 1, row, "bias %d", bias)
	}
}

func TestRowNoOutOfRange(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	_, err := ts.RowNo(jan1+10, BiasAfter)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = ts.RowNo(jan1-1, BiasBefore)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	// The opposite biases clamp to the nearest endpoint.
	row, err := ts.RowNo(jan1+10, BiasBefore)
	require.NoError(t, err)
	require.Equal(t, 2, row)

	row, err = ts.RowNo(jan1-1, BiasAfter)
	require.NoError(t, err)
	require.Equal(t, 0, row)
}

func TestRowNoDescending(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1, jan1 + 2, jan1 + 4}, 1, 2, 3)
	ts.Reverse()
	// Memory order is now jan1+4, jan1+2, jan1.

	row, err := ts.RowNo(jan1+2, BiasExact)
	require.NoError(t, err)
	require.Equal(t, 1, row)

	// Calendar "after" maps to the lower memory index.
	row, err = ts.RowNo(jan1+1, BiasAfter)
	require.NoError(t, err)
	require.Equal(t, 1, row)

	row, err = ts.RowNo(jan1+1, BiasBefore)
	require.NoError(t, err)
	require.Equal(t, 2, row)

	_, err = ts.RowNo(jan1+10, BiasAfter)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = ts.RowNo(jan1-1, BiasBefore)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestRowNoInvalidBias(t *testing.T) {
	ts := newDaily(t, jan1, 1)

	_, err := ts.RowNo(jan1, Bias(5))
	require.Error(t, err)
}

func TestRowNoEmptySeries(t *testing.T) {
	ts := newDaily(t, jan1)

	_, err := ts.RowNo(jan1, BiasExact)
	require.ErrorIs(t, err, errs.ErrDateNotFound)

	_, err = ts.RowNo(jan1, BiasAfter)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestLookupRow(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)

	require.Equal(t, 1, ts.LookupRow(jan1+1, BiasExact))
	require.Equal(t, MissingRow, ts.LookupRow(jan1+10, BiasExact))
}

func TestClosestDate(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1, jan1 + 3}, 1, 2)

	date, err := ts.ClosestDate(jan1+1, BiasAfter)
	require.NoError(t, err)
	require.Equal(t, jan1+3, date)

	date, err = ts.ClosestDate(jan1+1, BiasBefore)
	require.NoError(t, err)
	require.Equal(t, jan1, date)

	_, err = ts.ClosestDate(jan1+10, BiasAfter)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}
