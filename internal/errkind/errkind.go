// Package errkind defines the error kinds shared by the decoder, the shape
// model and the editor session.
//
// Every failure returned by this module wraps exactly one of these sentinels,
// so callers classify errors with errors.Is and keep the wrapped message for
// diagnostics:
//
//	img, err := pixmap.Decode(r)
//	if errors.Is(err, errkind.ErrTruncatedPixelData) {
//	    // file was cut short
//	}
package errkind

import "errors"

var (
	// ErrUnsupportedFormat reports an unknown magic token or record type.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidHeader reports a header value that parsed but is out of range,
	// or a header token that is not a number.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrTruncatedHeader reports end-of-stream inside the pixel-map header.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrTruncatedPixelData reports fewer samples than the header promised.
	ErrTruncatedPixelData = errors.New("truncated pixel data")

	// ErrInvalidSample reports an ASCII sample that is not a number.
	ErrInvalidSample = errors.New("invalid sample")

	// ErrMissingField reports a document record without a required key.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidArgument reports caller input that cannot be used as given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIOFailure reports a read or write error from the underlying stream.
	ErrIOFailure = errors.New("i/o failure")

	// ErrHandleGone reports a rendering handle the surface no longer knows.
	ErrHandleGone = errors.New("handle already gone")
)
