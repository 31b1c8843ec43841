package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// DurationHeader carries the handler's processing time in microseconds.
const DurationHeader = "X-Processing-Time-Micros"

// statusRecorder remembers the status code and stamps DurationHeader
// just before the headers go out.
type statusRecorder struct {
	http.ResponseWriter
	start       time.Time
	status      int
	bytes       int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, start: time.Now(), status: http.StatusOK}
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	micros := time.Since(w.start).Microseconds()
	w.Header().Set(DurationHeader, strconv.FormatInt(micros, 10))
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
