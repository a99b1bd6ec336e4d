package routing

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/zeptools/informes/responses"
	"github.com/zeptools/informes/rw"
)

// Recover turns a panic into a 500 JSON error when nothing was sent yet
var Recover = HandlerWrapperFunc(RecoverWrapper)

func RecoverWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := rw.NewStatusWriter(w)
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("[PANIC] recovered: %v\n%s", rec, debug.Stack())
				if !sw.Written() {
					responses.WriteErrorJSON(sw, http.StatusInternalServerError, "internal server error")
				}
			}
		}()
		inner.ServeHTTP(sw, r)
	})
}

// AccessLog logs one line per request
var AccessLog = HandlerWrapperFunc(func(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := rw.NewStatusWriter(w)
		inner.ServeHTTP(sw, r)
		log.Printf("[INFO][HTTP] %s %s %d %dB %v", r.Method, r.URL.Path, sw.Status, sw.Bytes, time.Since(start).Round(time.Millisecond))
	})
})
