// Package rest serves the read-only HTTP status surface: health, Prometheus
// metrics, daemon status and the alarm list.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

// Routes served by the router.
const (
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
	PathStatus  = "/api/v1/status"
	PathAlarms  = "/api/v1/alarms"
	PathAlarm   = "/api/v1/alarms/{id}"
)

// Service is the read side of the alarm service.
type Service interface {
	List(ctx context.Context) domain.Collection
	Get(ctx context.Context, id string) (domain.Alarm, error)
}

// StatusFunc reports the current status.
type StatusFunc func(ctx context.Context) alarms.Status

//go:generate ffjson -nodecoder router.go

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// Router maps HTTP requests onto the alarm service.
type Router struct {
	// ctx carries the logger used by handlers.
	ctx context.Context
	// router is the route table.
	router *mux.Router
	// service answers alarm queries.
	service Service
	// status builds /api/v1/status responses.
	status StatusFunc
}

// NewRouter builds the route table. metrics may be nil to disable /metrics.
func NewRouter(ctx context.Context, service Service, statusFn StatusFunc, metrics http.Handler) *Router {
	if statusFn == nil {
		statusFn = func(ctx context.Context) alarms.Status {
			return alarms.Status{Alarms: service.List(ctx)}
		}
	}

	r := &Router{
		ctx:     logger.WithName(ctx, "http"),
		router:  mux.NewRouter(),
		service: service,
		status:  statusFn,
	}

	r.router.HandleFunc(PathHealth, r.handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.router.HandleFunc(PathStatus, r.handleStatus).Methods(http.MethodGet)
	r.router.HandleFunc(PathAlarms, r.handleAlarms).Methods(http.MethodGet)
	r.router.HandleFunc(PathAlarm, r.handleAlarm).Methods(http.MethodGet)

	if metrics != nil {
		r.router.Handle(PathMetrics, metrics).Methods(http.MethodGet)
	}

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		r.sendJSON(w, http.StatusNotFound, &errorResponse{Error: "not found"})
	})

	return r
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	logger.DebugKV(r.ctx, "Handle request", "method", req.Method, "url", req.URL.String(), "remote", req.RemoteAddr)

	r.router.ServeHTTP(w, req)
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	r.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) {
	status := r.status(req.Context())

	r.sendJSON(w, http.StatusOK, &status)
}

func (r *Router) handleAlarms(w http.ResponseWriter, req *http.Request) {
	list := r.service.List(req.Context())
	if list == nil {
		list = domain.Collection{}
	}

	r.sendJSON(w, http.StatusOK, list)
}

func (r *Router) handleAlarm(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	a, err := r.service.Get(req.Context(), id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			r.sendJSON(w, http.StatusNotFound, &errorResponse{Error: notFound.Error()})

			return
		}

		logger.ErrorKV(r.ctx, "Cannot load alarm", "id", id, "error", err)
		r.sendJSON(w, http.StatusInternalServerError, &errorResponse{Error: "internal error"})

		return
	}

	r.sendJSON(w, http.StatusOK, &a)
}

func (r *Router) sendJSON(w http.ResponseWriter, code int, payload any) {
	buf, err := ffjson.Marshal(payload)
	if err != nil {
		logger.ErrorKV(r.ctx, "Cannot serialize response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err = w.Write(buf); err != nil {
		logger.DebugKV(r.ctx, "Cannot write response", "error", err)
	}
}
