// Package errs defines the sentinel error values returned by tempus.
//
// Callers should test for specific conditions with errors.Is:
//
//	row, err := ts.RowNo(date, series.BiasExact)
//	if errors.Is(err, errs.ErrDateNotFound) {
//	    // handle missing date
//	}
//
// Errors are wrapped at the call site with additional context, so the
// message carries the detail while errors.Is still matches the sentinel.
package errs

import "errors"

var (
	// ErrDateNotFound indicates an exact-match date lookup failed, or a
	// matched replacement referenced a date absent from the target series.
	ErrDateNotFound = errors.New("date not found")

	// ErrOutOfRange indicates a nearest-match date lookup fell outside the
	// series date range in the requested direction.
	ErrOutOfRange = errors.New("date out of range")

	// ErrTypeMismatch indicates a date code was presented to the wrong code
	// space for the series frequency (ordinal vs. timestamp).
	ErrTypeMismatch = errors.New("date code type mismatch")

	// ErrLengthMismatch indicates series lengths differ where equal lengths
	// were required and neither discarding nor padding was requested.
	ErrLengthMismatch = errors.New("series length mismatch")

	// ErrColumnMismatch indicates two series carry different value
	// dimensionality where identical columns were required.
	ErrColumnMismatch = errors.New("column count mismatch")

	// ErrDateMismatch indicates two date sequences were required to be
	// identical but differ.
	ErrDateMismatch = errors.New("date series mismatch")

	// ErrUnsupportedConversion indicates a frequency conversion to a finer
	// frequency than the source, which is not supported.
	ErrUnsupportedConversion = errors.New("unsupported frequency conversion")

	// ErrRowOutOfRange indicates a row index outside the series bounds.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrDuplicateDates reports duplicate date codes detected during a forced
	// sort. It is non-fatal: the sort completes and the series is left in the
	// requested order, but ordering among duplicates is unspecified.
	ErrDuplicateDates = errors.New("duplicate dates")

	// ErrInvalidFrequency indicates an unknown or out-of-range frequency value.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrCorruptedSnapshot indicates a snapshot failed structural or checksum
	// validation during decoding.
	ErrCorruptedSnapshot = errors.New("corrupted snapshot")

	// ErrEmptyCollection indicates an aggregate operation was invoked on a
	// collection holding no series.
	ErrEmptyCollection = errors.New("empty collection")

	// ErrMissingKey indicates a series without a key was added to a keyed
	// collection, or a requested key is absent.
	ErrMissingKey = errors.New("missing series key")
)
