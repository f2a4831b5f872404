package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// ResponseTimeHeader carries the handler latency in milliseconds.
const ResponseTimeHeader = "X-Response-Time"

// ResponseTime stamps every response with the time spent before the first byte.
func ResponseTime() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &timingWriter{ResponseWriter: w, start: time.Now()}
			next.ServeHTTP(tw, r)
			tw.stamp()
		})
	}
}

// timingWriter sets the header right before the status line goes out.
type timingWriter struct {
	http.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	ms := float64(time.Since(w.start).Microseconds()) / 1000
	w.Header().Set(ResponseTimeHeader, strconv.FormatFloat(ms, 'f', 2, 64)+"ms")
}

func (w *timingWriter) WriteHeader(status int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(status)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
