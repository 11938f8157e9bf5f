package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronolab/tempus/errs"
)

func TestDirection(t *testing.T) {
	require.Equal(t, Ascending, newDaily(t, jan1, 1, 2, 3).Direction())

	desc := newDaily(t, jan1, 1, 2, 3)
	desc.Reverse()
	require.Equal(t, Descending, desc.Direction())

	require.Equal(t, Degenerate, newDaily(t, jan1, 1).Direction())
	require.Equal(t, Degenerate, newDaily(t, jan1).Direction())
}

func TestOrderString(t *testing.T) {
	require.Equal(t, "ascending", Ascending.String())
	require.Equal(t, "descending", Descending.String())
	require.Equal(t, "degenerate", Degenerate.String())
}

func TestReverseInvolution(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3, 4)
	original := ts.Clone()

	ts.Reverse()
	require.Equal(t, []int64{jan1 + 3, jan1 + 2, jan1 + 1, jan1}, ts.Dates)
	require.Equal(t, 4.0, ts.Values.At(0, 0))

	ts.Reverse()
	require.True(t, original.DatesMatch(ts))
	require.True(t, original.ValuesMatch(ts))
}

func TestSortByDateDirectionOnly(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	// Already ascending: untouched.
	require.NoError(t, ts.SortByDate(false, false))
	require.Equal(t, Ascending, ts.Direction())

	// Opposite direction: flipped.
	require.NoError(t, ts.SortByDate(true, false))
	require.Equal(t, Descending, ts.Direction())
	require.Equal(t, 3.0, ts.Values.At(0, 0))

	require.NoError(t, ts.SortByDate(false, false))
	require.Equal(t, Ascending, ts.Direction())
}

func TestSortByDateForced(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1 + 2, jan1, jan1 + 1}, 3, 1, 2)

	require.NoError(t, ts.SortByDate(false, true))
	require.Equal(t, []int64{jan1, jan1 + 1, jan1 + 2}, ts.Dates)
	require.Equal(t, []float64{1}, ts.Values.Row(0))
	require.Equal(t, []float64{3}, ts.Values.Row(2))

	require.NoError(t, ts.SortByDate(true, true))
	require.Equal(t, []int64{jan1 + 2, jan1 + 1, jan1}, ts.Dates)
	require.Equal(t, []float64{3}, ts.Values.Row(0))
}

func TestSortByDateForcedReportsDuplicates(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1 + 1, jan1, jan1 + 1}, 20, 1, 21)

	err := ts.SortByDate(false, true)
	require.ErrorIs(t, err, errs.ErrDuplicateDates)

	// The sort still completed, with duplicate rows in stable input order.
	require.Equal(t, []int64{jan1, jan1 + 1, jan1 + 1}, ts.Dates)
	require.Equal(t, []float64{20}, ts.Values.Row(1))
	require.Equal(t, []float64{21}, ts.Values.Row(2))
}

func TestSortByDateDirectionOnlySkipsDuplicateScan(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1, jan1 + 1, jan1 + 1, jan1 + 2}, 1, 2, 3, 4)

	require.NoError(t, ts.SortByDate(false, false))
}
