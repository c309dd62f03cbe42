// Package httpapi provides the JSON HTTP surface for minting ULIDs.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/gorilla/mux"

	"sortid.io/pkg/log"
	"sortid.io/pkg/ulid"
	"sortid.io/pkg/version"
)

// DefaultMaxBatch caps the number of identifiers minted per request when
// Config.MaxBatch is unset.
const DefaultMaxBatch = 1000

// Config parameters to create a new Server.
type Config struct {
	Logger    log.Logger
	Generator *ulid.Generator

	// MaxBatch limits the n query parameter. Zero means DefaultMaxBatch.
	MaxBatch int
}

// Server serves the minting API:
//
//	GET /v1/ulid            one identifier
//	GET /v1/ulid?n=K        K identifiers, strictly increasing when the
//	                        generator is monotonic
//	GET /v1/ulid?ms=T       identifiers for an explicit millisecond timestamp
//	GET /version            build information
type Server struct {
	r        *mux.Router
	gen      *ulid.Generator
	maxBatch int
}

// New creates a Server.
func New(config Config) (*Server, error) {
	if config.Generator == nil {
		return nil, errors.New("httpapi: config missing generator")
	}

	srv := &Server{
		r:        mux.NewRouter(),
		gen:      config.Generator,
		maxBatch: config.MaxBatch,
	}
	if srv.maxBatch <= 0 {
		srv.maxBatch = DefaultMaxBatch
	}

	srv.r.Use(
		log.HTTP(config.Logger), // HTTP logging middleware.
		srv.recoverPanic,        // convert any panic into 500 errors.
	)

	// middleware for NotFoundHandler must be set separately from matched routes.
	srv.r.NotFoundHandler = log.HTTP(config.Logger)(http.HandlerFunc(srv.notFound))

	srv.r.HandleFunc("/v1/ulid", srv.mint).Methods(http.MethodGet)
	srv.r.Handle("/version", version.Handler()).Methods(http.MethodGet)

	return srv, nil
}

// Handler returns the mux router used by the Server.
func (srv *Server) Handler() http.Handler { return srv.r }

type mintResponse struct {
	ULIDs []string `json:"ulids"`
}

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}

func (srv *Server) mint(w http.ResponseWriter, r *http.Request) {
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > srv.maxBatch {
			srv.fail(w, r, http.StatusBadRequest, errors.New("n must be an integer between 1 and "+strconv.Itoa(srv.maxBatch)))
			return
		}
		n = v
	}

	var (
		ms    int64
		hasMS bool
	)
	if raw := r.URL.Query().Get("ms"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			srv.fail(w, r, http.StatusBadRequest, errors.New("ms must be a non-negative integer millisecond timestamp"))
			return
		}
		ms, hasMS = v, true
	}

	resp := mintResponse{ULIDs: make([]string, 0, n)}
	for i := 0; i < n; i++ {
		var (
			s   string
			err error
		)
		if hasMS {
			s, err = srv.gen.NewAt(ms)
		} else {
			s, err = srv.gen.New()
		}
		if err != nil {
			srv.fail(w, r, statusFor(err), err)
			return
		}
		resp.ULIDs = append(resp.ULIDs, s)
	}

	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps generator errors to HTTP statuses. Timestamp validation is
// the caller's mistake; an exhausted sequence clears on the next
// millisecond, so it is reported as transient.
func statusFor(err error) int {
	var its *ulid.InvalidTimestampError
	switch {
	case errors.As(err, &its):
		return http.StatusBadRequest
	case errors.Is(err, ulid.ErrSequenceExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (srv *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	msg := err.Error()
	if code >= 500 {
		log.Info(logger).Log("err", err, "msg", "mint failed")
		msg = http.StatusText(code)
	} else {
		log.Debug(logger).Log("err", err, "msg", "rejected request")
	}

	writeJSON(w, code, errorResponse{Error: msg, TraceID: log.TraceID(ctx)})
}

func (srv *Server) notFound(w http.ResponseWriter, r *http.Request) {
	srv.fail(w, r, http.StatusNotFound, errors.New("not found"))
}

func (srv *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger := log.FromContext(r.Context())
				log.Info(logger).Log("msg", "recovered handler panic", "panic", rec, "stack", string(debug.Stack()))
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Error:   http.StatusText(http.StatusInternalServerError),
					TraceID: log.TraceID(r.Context()),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
