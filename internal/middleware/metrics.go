package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/segyhp/debt-tracker/internal/metrics"
	"github.com/segyhp/debt-tracker/pkg/response"
)

// Metrics records request counts and latency labelled by the matched route
// template, so /debts/{id} is one series rather than one per debt.
func Metrics(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := response.NewRecorder(w)

			next.ServeHTTP(recorder, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}

			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.StatusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
