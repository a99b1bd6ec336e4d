package informe

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/zeptools/informes/pdfs"
)

// ErrSessionClosed is returned by every Session operation after Close,
// or after the session was aborted by a StreamError.
var ErrSessionClosed = errors.New("informe: session is closed")

// MeasurementError means text could not be measured (unknown font, bad
// width, ...). Pagination cannot proceed without metrics, so it is fatal
// for the render.
type MeasurementError struct {
	Text string // leading part of the text being measured
	Font pdfs.Font
	Err  error
}

func (e *MeasurementError) Error() string {
	return fmt.Sprintf("informe: cannot measure %q in %s: %v", e.Text, e.Font, e.Err)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}

// StreamError means the output side went away: the request context ended
// or writing to the client failed. The session is aborted and nothing is
// retried.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("informe: %s: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

func newMeasurementError(text string, font pdfs.Font, err error) *MeasurementError {
	const maxQuoted = 40
	r := []rune(text)
	if len(r) > maxQuoted {
		text = string(r[:maxQuoted]) + "..."
	}
	return &MeasurementError{Text: text, Font: font, Err: err}
}
