package throttle

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/zeptools/informes/requests"
	"github.com/zeptools/informes/responses"
)

// Wrapper limits requests per client IP with one bucket group.
// It implements routing.HandlerWrapper.
type Wrapper struct {
	Store *BucketStore[string]
	Group string
	Now   func() time.Time // nil = time.Now
}

func (tw *Wrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		if tw.Now != nil {
			now = tw.Now()
		}
		ip := requests.GetClientIP(r)
		if !tw.Store.Allow(tw.Group, ip, now) {
			log.Printf("[WARN][Throttle] %s blocked on %q", ip, tw.Group)
			retry := time.Second
			if b, ok := tw.Store.GetBucket(tw.Group, ip); ok {
				retry = b.RetryAfter(now)
			}
			w.Header().Set("Retry-After", strconv.Itoa(max(1, int(math.Ceil(retry.Seconds())))))
			responses.WriteErrorJSON(w, http.StatusTooManyRequests, "demasiadas solicitudes, intente nuevamente en unos segundos")
			return
		}
		inner.ServeHTTP(w, r)
	})
}
