// Package api serves the lead-management REST endpoints.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/osr-alliance/backend-service-leads/metrics"
	"github.com/osr-alliance/backend-service-leads/store"
	"github.com/sirupsen/logrus"
)

type handler struct {
	store store.Store
	log   logrus.FieldLogger
}

// Option configures the handler returned by NewHandler.
type Option func(*options)

type options struct {
	rateLimit float64
	rateBurst int
}

// WithRateLimit caps each client address at rps requests per second with bursts of burst.
// rps <= 0 leaves requests unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = rps
		o.rateBurst = burst
	}
}

// NewHandler returns the service's routes wrapped with CORS and request logging.
func NewHandler(s store.Store, log logrus.FieldLogger, opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &handler{
		store: s,
		log:   log,
	}

	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/leads", h.CreateLead).Methods(http.MethodPost)
	router.HandleFunc("/leads", h.ListLeads).Methods(http.MethodGet)
	router.HandleFunc("/leads/{id}", h.UpdateLead).Methods(http.MethodPatch)
	router.HandleFunc("/leads/{id}", h.DeleteLead).Methods(http.MethodDelete)
	router.HandleFunc("/leads/{id}/comment", h.CreateComment).Methods(http.MethodPost)
	router.HandleFunc("/leads/{id}/comments", h.ListComments).Methods(http.MethodGet)

	router.HandleFunc("/agents", h.CreateAgent).Methods(http.MethodPost)
	router.HandleFunc("/agents", h.ListAgents).Methods(http.MethodGet)

	router.HandleFunc("/report/last-week", h.ReportLastWeek).Methods(http.MethodGet)
	router.HandleFunc("/report/pipeline", h.ReportPipeline).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found.")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	var next http.Handler = router
	if o.rateLimit > 0 {
		next = newClientLimiter(o.rateLimit, o.rateBurst).middleware(log)(next)
	}

	// CORS sits outside the router so preflight requests never reach route matching
	return corsMiddleware(requestLogger(log)(next))
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello Backend Start Now"))
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, "Store unavailable.", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
