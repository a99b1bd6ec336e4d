package rw

import (
	"io"
	"net/http"
)

// CountWriter passes writes through and counts the bytes the wrapped
// writer accepted, so a broken stream can report how far it got
type CountWriter struct {
	w io.Writer
	n int64
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: w}
}

func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func (cw *CountWriter) BytesWritten() int64 {
	return cw.n
}

// Flush forwards to the wrapped writer when it can flush, directly or
// through Unwrap
func (cw *CountWriter) Flush() {
	switch w := cw.w.(type) {
	case http.Flusher:
		w.Flush()
	case http.ResponseWriter:
		_ = http.NewResponseController(w).Flush()
	}
}
