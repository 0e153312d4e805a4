package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/event"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/user/{email}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Delete("/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/user/a@x.com", "/user/b@x.com"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	req := httptest.NewRequest(http.MethodDelete, "/product/abc", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/user/{email}", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("DELETE", "/product/{id}", "404")))
}

func TestMiddleware_OutsideRouter(t *testing.T) {
	m := New(prometheus.NewRegistry())

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", unmatchedRoute, "418")))
}

func TestCommandMonitor(t *testing.T) {
	m := New(prometheus.NewRegistry())
	mon := m.CommandMonitor()

	mon.Succeeded(context.Background(), &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: 5 * time.Millisecond},
	})
	mon.Failed(context.Background(), &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", Duration: time.Millisecond},
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeCommands.WithLabelValues("find", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeCommands.WithLabelValues("insert", "failure")))
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.observeCommand("find", "success", time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "store_commands_total")
}
