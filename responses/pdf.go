package responses

import (
	"io"
	"net/http"

	"github.com/zeptools/informes/rw"
)

// WritePDFResponseHeaders write HTTP response headers for a PDF download. i.e. headers are frozen
func WritePDFResponseHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}

// WritePDF sends a finished document as an attachment and returns the
// number of body bytes written. Once headers are out a failure can only
// be logged by the caller.
func WritePDF(w http.ResponseWriter, filename string, doc io.WriterTo) (int64, error) {
	WritePDFResponseHeaders(w, filename)
	cw := rw.NewCountWriter(w)
	if _, err := doc.WriteTo(cw); err != nil {
		return cw.BytesWritten(), err
	}
	cw.Flush()
	return cw.BytesWritten(), nil
}
