package rw

import "net/http"

// StatusWriter remembers the status code and body size of a response
type StatusWriter struct {
	http.ResponseWriter
	Status int
	Bytes  int64
}

func NewStatusWriter(w http.ResponseWriter) *StatusWriter {
	return &StatusWriter{ResponseWriter: w}
}

func (sw *StatusWriter) WriteHeader(code int) {
	if sw.Status == 0 {
		sw.Status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *StatusWriter) Write(p []byte) (int, error) {
	if sw.Status == 0 {
		sw.Status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(p)
	sw.Bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (sw *StatusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// Written reports whether anything has been sent to the client
func (sw *StatusWriter) Written() bool {
	return sw.Status != 0
}
