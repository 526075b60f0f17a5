// Package ops serves the operational HTTP endpoints: liveness, readiness
// and Prometheus metrics.
package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/gorilla/mux"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	readinessTimeout = 2 * time.Second
)

// Pinger is a dependency the server needs in order to serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Status is the JSON body of both probes.
type Status struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health answers liveness and readiness probes. Ping errors are logged,
// the probe body only names the failing dependency.
type Health struct {
	deps   map[string]Pinger
	logger logging.Logger
}

func NewHealth(l logging.Logger) *Health {
	return &Health{deps: make(map[string]Pinger), logger: l.With("module", "ops")}
}

// Add registers a dependency checked by readiness. Call before serving.
func (h *Health) Add(name string, p Pinger) *Health {
	h.deps[name] = p
	return h
}

// Liveness always reports ok while the process runs.
func (h *Health) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, Status{Status: StatusOK})
}

// Readiness pings every dependency and answers 503 when any of them fails.
func (h *Health) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	st := h.Check(ctx)
	code := http.StatusOK
	if st.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	writeStatus(w, code, st)
}

// Check pings the dependencies in name order.
func (h *Health) Check(ctx context.Context) Status {
	st := Status{Status: StatusOK, Dependencies: make(map[string]string, len(h.deps))}

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.logger.Warn(ctx, "dependency unavailable", "dependency", name, "error", err)
			st.Status = StatusUnavailable
			st.Dependencies[name] = StatusUnavailable
			continue
		}
		st.Dependencies[name] = StatusOK
	}
	return st
}

func writeStatus(w http.ResponseWriter, code int, st Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(st)
}

// NewRouter routes /healthz, /readyz and /metrics.
func NewRouter(h *Health, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Liveness).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.Readiness).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", metrics).Methods(http.MethodGet)
	return r
}
