// Package server exposes the calculation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carbonex/footprint/internal/assessdb"
	"github.com/carbonex/footprint/internal/engine"
	"github.com/carbonex/footprint/internal/factors"
	"github.com/carbonex/footprint/internal/logging"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	maxBodyBytes      = 1 << 20
	defaultListLimit  = 20
	maxListLimit      = 200
)

// Server routes assessment requests to the engine and, when a store
// is configured, persists the results.
type Server struct {
	engine *engine.Engine
	store  assessdb.Store
}

// New builds a server. store may be nil; persistence endpoints then
// return 503.
func New(eng *engine.Engine, store assessdb.Store) *Server {
	return &Server{engine: eng, store: store}
}

// Router assembles the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/assessments", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
	})
	return r
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Ctx(ctx).
			Str("component", "server").
			Str("addr", addr).
			Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().
		Str("component", "server").
		Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.FromContext(ctx)

	var input engine.CalculationInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}

	result, err := s.engine.Calculate(ctx, input)
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		log.Warn().
			Ctx(ctx).
			Str("component", "server").
			Str("operation", "calculate").
			Err(err).
			Msg("calculation failed")
		writeError(w, status, err.Error())
		return
	}

	if s.store != nil && r.URL.Query().Get("save") == "true" {
		rec := assessdb.NewRecord(input, result)
		if err := s.store.SaveAssessment(ctx, rec); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("saving assessment: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, calculateResponse{ID: rec.ID, CalculationResult: result})
		return
	}

	writeJSON(w, http.StatusOK, calculateResponse{CalculationResult: result})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment storage is not configured")
		return
	}

	rec, err := s.store.GetAssessment(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, assessdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment storage is not configured")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxListLimit)
	}

	records, err := s.store.ListAssessments(r.Context(), r.URL.Query().Get("organization"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*assessdb.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Assessments: records})
}

type calculateResponse struct {
	ID string `json:"id,omitempty"`
	*engine.CalculationResult
}

type listResponse struct {
	Assessments []*assessdb.Record `json:"assessments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// isInputError reports whether the failure is attributable to the
// request rather than the service.
func isInputError(err error) bool {
	var verr *engine.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, factors.ErrFactorNotFound) ||
		errors.Is(err, engine.ErrUnitConversionFailed) ||
		errors.Is(err, engine.ErrInvalidScope3Category)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
