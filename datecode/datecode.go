// Package datecode converts between the three representations of a series
// date: the native integer code, a formatted string, and time.Time.
//
// Two code spaces exist and never mix. Day-or-coarser frequencies (day, week,
// month, quarter, year) use ordinal codes: days since 0001-01-01 in the
// proleptic Gregorian calendar, with 0001-01-01 = 1. Sub-day frequencies
// (second, minute, hour) use timestamp codes: seconds since the Unix epoch.
// Passing a code to the wrong decoder is a caller error and fails with
// errs.ErrTypeMismatch where it can be detected.
//
// All calendar math is performed in UTC.
package datecode

import (
	"fmt"
	"time"

	"github.com/chronolab/tempus/errs"
)

// Frequency identifies the sampling frequency of a series and therefore the
// code space its dates live in. The numeric order runs from finest to
// coarsest, so frequencies are directly comparable for conversion checks.
type Frequency uint8

const (
	FreqSecond Frequency = iota + 1
	FreqMinute
	FreqHour
	FreqDay
	FreqWeek
	FreqMonth
	FreqQuarter
	FreqYear
)

// Kind classifies the code space of a frequency.
type Kind uint8

const (
	KindOrdinal   Kind = 0x1 // KindOrdinal represents day-granularity codes.
	KindTimestamp Kind = 0x2 // KindTimestamp represents sub-day codes.
)

// MaxOrdinal is the ordinal of 9999-12-31, the last representable day.
const MaxOrdinal int64 = 3652059

// unixEpochOrdinal is the ordinal of 1970-01-01.
const unixEpochOrdinal int64 = 719163

func (f Frequency) String() string {
	switch f {
	case FreqSecond:
		return "sec"
	case FreqMinute:
		return "min"
	case FreqHour:
		return "h"
	case FreqDay:
		return "d"
	case FreqWeek:
		return "w"
	case FreqMonth:
		return "m"
	case FreqQuarter:
		return "q"
	case FreqYear:
		return "y"
	default:
		return "unknown"
	}
}

// ParseFrequency parses the short frequency mnemonic used in headers and
// snapshots: sec, min, h, d, w, m, q, y.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "sec":
		return FreqSecond, nil
	case "min":
		return FreqMinute, nil
	case "h":
		return FreqHour, nil
	case "d":
		return FreqDay, nil
	case "w":
		return FreqWeek, nil
	case "m":
		return FreqMonth, nil
	case "q":
		return FreqQuarter, nil
	case "y":
		return FreqYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidFrequency, s)
	}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f >= FreqSecond && f <= FreqYear
}

// Kind returns the code space implied by the frequency.
func (f Frequency) Kind() Kind {
	if f >= FreqDay {
		return KindOrdinal
	}

	return KindTimestamp
}

// Layout returns the default formatting layout for the frequency's code space.
func (f Frequency) Layout() string {
	if f.Kind() == KindOrdinal {
		return "2006-01-02"
	}

	return "2006-01-02 15:04:05"
}

// Encode converts t to the native code of the given frequency, truncating to
// the granularity of the code space (midnight for ordinals, whole seconds for
// timestamps).
func Encode(t time.Time, f Frequency) int64 {
	if f.Kind() == KindOrdinal {
		return ToOrdinal(t)
	}

	return t.Unix()
}

// Decode converts a native code back to a time.Time in UTC, picking the
// decoder by frequency.
func Decode(code int64, f Frequency) (time.Time, error) {
	if f.Kind() == KindOrdinal {
		return FromOrdinal(code)
	}

	return FromTimestamp(code), nil
}

// Format renders a native code with the default layout of its code space.
func Format(code int64, f Frequency) (string, error) {
	return FormatLayout(code, f, f.Layout())
}

// FormatLayout renders a native code with an explicit time layout.
func FormatLayout(code int64, f Frequency, layout string) (string, error) {
	t, err := Decode(code, f)
	if err != nil {
		return "", err
	}

	return t.Format(layout), nil
}

// ToOrdinal returns the ordinal day code of t's calendar date (UTC).
func ToOrdinal(t time.Time) int64 {
	t = t.UTC()

	return daysFromCivil(t.Year(), int(t.Month()), t.Day()) + unixEpochOrdinal
}

// FromOrdinal converts an ordinal code to midnight UTC of that day.
// Codes outside [1, MaxOrdinal] cannot be ordinals and fail with
// errs.ErrTypeMismatch.
func FromOrdinal(code int64) (time.Time, error) {
	if code < 1 || code > MaxOrdinal {
		return time.Time{}, fmt.Errorf("%w: %d is not an ordinal date code", errs.ErrTypeMismatch, code)
	}

	y, m, d := civilFromDays(code - unixEpochOrdinal)

	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

// ToTimestamp returns the Unix-second code of t.
func ToTimestamp(t time.Time) int64 {
	return t.Unix()
}

// FromTimestamp converts a Unix-second code to a UTC time.
func FromTimestamp(code int64) time.Time {
	return time.Unix(code, 0).UTC()
}

// Weekday returns the day of week of an ordinal code. Ordinal 1
// (0001-01-01) is a Monday.
func Weekday(ordinal int64) time.Weekday {
	return time.Weekday(((ordinal % 7) + 7) % 7)
}

// WeekEnd returns the ordinal of the next occurrence of weekday on or after
// the given ordinal, i.e. the ending date of the week bucket that contains it.
func WeekEnd(ordinal int64, weekday time.Weekday) int64 {
	delta := (int64(weekday) - int64(Weekday(ordinal)) + 7) % 7

	return ordinal + delta
}

// MonthEnd returns the ordinal of the last day of the given month.
func MonthEnd(year int, month time.Month) int64 {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	return daysFromCivil(first.Year(), int(first.Month()), first.Day()) + unixEpochOrdinal
}

// QuarterEnd returns the ordinal of the last day of the quarter containing
// the given month.
func QuarterEnd(year int, month time.Month) int64 {
	qm := time.Month(((int(month)-1)/3)*3 + 3)

	return MonthEnd(year, qm)
}

// YearEnd returns the ordinal of December 31 of the given year.
func YearEnd(year int) int64 {
	return daysFromCivil(year, 12, 31) + unixEpochOrdinal
}

// daysFromCivil returns the number of days between the given civil date and
// 1970-01-01 in the proleptic Gregorian calendar.
func daysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}

	var era int64
	if yy >= 0 {
		era = yy / 400
	} else {
		era = (yy - 399) / 400
	}

	yoe := yy - era*400

	var mp int64
	if m > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}

	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy

	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y, m, d int) {
	z += 719468

	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}

	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	yy := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = int(doy - (153*mp+2)/5 + 1)

	if mp < 10 {
		m = int(mp + 3)
	} else {
		m = int(mp - 9)
		yy++
	}

	return int(yy), m, d
}
