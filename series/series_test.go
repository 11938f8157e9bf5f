package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chronolab/tempus/datecode"
	"github.com/chronolab/tempus/errs"
	"github.com/chronolab/tempus/internal/vector"
)

// ordinal of 2023-01-01; daily test fixtures count up from here.
const jan1 int64 = 738521

func newDaily(t *testing.T, start int64, values ...float64) *Series {
	t.Helper()

	dates := make([]int64, len(values))
	for i := range values {
		dates[i] = start + int64(i)
	}

	ts, err := New("test", datecode.FreqDay, true, dates, vector.FromSlice(values))
	require.NoError(t, err)

	return ts
}

func newDailyAt(t *testing.T, dates []int64, values ...float64) *Series {
	t.Helper()

	require.Len(t, values, len(dates))
	ts, err := New("test", datecode.FreqDay, true, dates, vector.FromSlice(values))
	require.NoError(t, err)

	return ts
}

func TestNewValidation(t *testing.T) {
	_, err := New("x", datecode.Frequency(0), true, nil, nil)
	require.ErrorIs(t, err, errs.ErrInvalidFrequency)

	_, err = New("x", datecode.FreqDay, true, []int64{jan1, jan1 + 1}, vector.FromSlice([]float64{1}))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	// Timestamp codes are not valid ordinals.
	_, err = New("x", datecode.FreqDay, true, []int64{1703462400}, vector.FromSlice([]float64{1}))
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	// The same code is fine in the timestamp space.
	_, err = New("x", datecode.FreqHour, true, []int64{1703462400}, vector.FromSlice([]float64{1}))
	require.NoError(t, err)

	// A nil matrix defaults to a zero-filled single column.
	ts, err := New("x", datecode.FreqDay, true, []int64{jan1}, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, ts.Values.Row(0))
}

func TestLenShapeLengths(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	require.Equal(t, 3, ts.Len())
	rows, cols := ts.Shape()
	require.Equal(t, 3, rows)
	require.Equal(t, 1, cols)

	dates, values := ts.Lengths()
	require.Equal(t, 3, dates)
	require.Equal(t, 3, values)
}

func TestCloneIndependence(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)
	ts.Columns = []string{"a"}

	c := ts.Clone()
	c.Dates[0] = jan1 + 100
	c.Values.Set(0, 0, 99)
	c.Columns[0] = "b"

	require.Equal(t, jan1, ts.Dates[0])
	require.Equal(t, 1.0, ts.Values.At(0, 0))
	require.Equal(t, "a", ts.Columns[0])
}

func TestHeaderItems(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)
	ts.Columns = []string{"v"}

	h := ts.Header()
	require.Equal(t, "test", h.Key)
	require.Equal(t, []string{"v"}, h.Columns)
	require.Equal(t, datecode.FreqDay, h.Frequency)
	require.True(t, h.EndOfPeriod)

	items := ts.Items()
	require.Len(t, items, 2)
	require.Equal(t, jan1+1, items[1].Date)
	require.Equal(t, []float64{2}, items[1].Values)

	// Item value rows are copies.
	items[0].Values[0] = 99
	require.Equal(t, 1.0, ts.Values.At(0, 0))
}

func TestTrunc(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3, 4, 5)

	out := ts.Trunc(1, 3, true)
	require.Equal(t, 2, out.Len())
	require.Equal(t, jan1+1, out.Dates[0])
	require.Equal(t, 5, ts.Len(), "clone leaves the receiver untouched")

	// Negative finish means through the end; bounds clamp.
	out = ts.Trunc(3, -1, true)
	require.Equal(t, 2, out.Len())
	out = ts.Trunc(-5, 100, true)
	require.Equal(t, 5, out.Len())
	out = ts.Trunc(4, 2, true)
	require.Equal(t, 0, out.Len())

	// In place.
	ts.Trunc(0, 2, false)
	require.Equal(t, 2, ts.Len())
}

func TestTruncDateInclusive(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3, 4, 5)

	out, err := ts.TruncDate(jan1+1, jan1+3, true)
	require.NoError(t, err)
	require.Equal(t, []int64{jan1 + 1, jan1 + 2, jan1 + 3}, out.Dates)
}

func TestTruncDateSnapping(t *testing.T) {
	// Every second day present: absent endpoints snap inward.
	ts := newDailyAt(t, []int64{jan1, jan1 + 2, jan1 + 4, jan1 + 6}, 1, 2, 3, 4)

	out, err := ts.TruncDate(jan1+1, jan1+5, true)
	require.NoError(t, err)
	require.Equal(t, []int64{jan1 + 2, jan1 + 4}, out.Dates)
}

func TestTruncDateOpenEnds(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	out, err := ts.TruncDate(NoDate, jan1+1, true)
	require.NoError(t, err)
	require.Equal(t, []int64{jan1, jan1 + 1}, out.Dates)

	out, err = ts.TruncDate(jan1+1, NoDate, true)
	require.NoError(t, err)
	require.Equal(t, []int64{jan1 + 1, jan1 + 2}, out.Dates)
}

func TestTruncDateOutOfRange(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	_, err := ts.TruncDate(jan1+10, NoDate, true)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = ts.TruncDate(NoDate, jan1-10, true)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestTruncDateDescending(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3, 4, 5)
	ts.Reverse()

	out, err := ts.TruncDate(jan1+1, jan1+3, true)
	require.NoError(t, err)
	require.Equal(t, Descending, out.Direction())
	require.Equal(t, []int64{jan1 + 3, jan1 + 2, jan1 + 1}, out.Dates)
}

func TestDateEndpoints(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2, 3)

	require.Equal(t, jan1, ts.StartDate())
	require.Equal(t, jan1+2, ts.EndDate())

	ts.Reverse()
	require.Equal(t, jan1, ts.StartDate())
	require.Equal(t, jan1+2, ts.EndDate())

	start, end := ts.DateRange()
	require.Equal(t, jan1, start)
	require.Equal(t, jan1+2, end)
}

func TestDateRendering(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)

	str, err := ts.FormatDate(jan1)
	require.NoError(t, err)
	require.Equal(t, "2023-01-01", str)

	strs, err := ts.DateStrings()
	require.NoError(t, err)
	require.Equal(t, []string{"2023-01-01", "2023-01-02"}, strs)

	times, err := ts.DateTimes()
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), times[1])

	require.Equal(t, jan1, ts.NativeDate(time.Date(2023, 1, 1, 15, 0, 0, 0, time.UTC)))
}

func TestSetZerosOnes(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)

	zeroed := ts.SetZeros(true)
	require.Equal(t, []float64{0}, zeroed.Values.Row(0))
	require.Equal(t, 1.0, ts.Values.At(0, 0))

	ts.SetOnes(false)
	require.Equal(t, []float64{1}, ts.Values.Row(1))
}

func TestGetDiffs(t *testing.T) {
	ts := newDaily(t, jan1, 10, 12, 15)

	diffs := ts.GetDiffs()
	require.Equal(t, 2, diffs.Len())
	// Each difference keys on the newer date.
	require.Equal(t, []int64{jan1 + 1, jan1 + 2}, diffs.Dates)
	require.Equal(t, 2.0, diffs.Values.At(0, 0))
	require.Equal(t, 3.0, diffs.Values.At(1, 0))
}

func TestGetDiffsDescending(t *testing.T) {
	ts := newDaily(t, jan1, 10, 12, 15)
	ts.Reverse()

	diffs := ts.GetDiffs()
	require.Equal(t, Descending, diffs.Direction())
	require.Equal(t, []int64{jan1 + 2, jan1 + 1}, diffs.Dates)
	require.Equal(t, 3.0, diffs.Values.At(0, 0))
}

func TestGetPcdiffs(t *testing.T) {
	ts := newDaily(t, jan1, 100, 110, 99)

	pc := ts.GetPcdiffs()
	require.Equal(t, 2, pc.Len())
	require.InDelta(t, 10.0, pc.Values.At(0, 0), 1e-9)
	require.InDelta(t, -10.0, pc.Values.At(1, 0), 1e-9)
}

func TestGetDiffsShortSeries(t *testing.T) {
	ts := newDaily(t, jan1, 1)
	require.Equal(t, 0, ts.GetDiffs().Len())
}

func TestMatchers(t *testing.T) {
	a := newDaily(t, jan1, 1, 2)
	b := newDaily(t, jan1, 1, 2)

	require.True(t, a.DatesMatch(b))
	require.True(t, a.ValuesMatch(b))

	b.Dates[1]++
	require.False(t, a.DatesMatch(b))

	b = newDaily(t, jan1, 1, 3)
	require.False(t, a.ValuesMatch(b))
}

func TestDupedDates(t *testing.T) {
	ts := newDailyAt(t, []int64{jan1, jan1 + 1, jan1 + 1, jan1 + 2, jan1 + 1}, 1, 2, 3, 4, 5)

	duped := ts.DupedDates()
	require.Len(t, duped, 1)
	require.Equal(t, jan1+1, duped[0].Date)
	require.Equal(t, 3, duped[0].Count)

	require.Empty(t, newDaily(t, jan1, 1, 2).DupedDates())
}

func TestYearsMonths(t *testing.T) {
	// Last day of 2022 and all of January 2023, then one trailing February day.
	dates := []int64{jan1 - 1}
	values := []float64{0}
	for i := int64(0); i < 31; i++ {
		dates = append(dates, jan1+i)
		values = append(values, float64(i+1))
	}
	dates = append(dates, jan1+31)
	values = append(values, 99)
	ts := newDailyAt(t, dates, values...)

	months, err := ts.Months(true)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, months["2022-12"])
	require.Equal(t, []float64{31}, months["2023-01"])
	require.Equal(t, []float64{99}, months["2023-02"])

	// Partial trailing February drops without includePartial.
	months, err = ts.Months(false)
	require.NoError(t, err)
	require.NotContains(t, months, "2023-02")
	require.Contains(t, months, "2023-01")

	years, err := ts.Years(true)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, years[2022])
	require.Equal(t, []float64{99}, years[2023])
}

func TestStringRendering(t *testing.T) {
	ts := newDaily(t, jan1, 1, 2)
	ts.Columns = []string{"v"}

	str := ts.String()
	require.Contains(t, str, `key="test"`)
	require.Contains(t, str, "2023-01-01 .. 2023-01-02")
	require.Contains(t, str, "(2, 1)")
}
