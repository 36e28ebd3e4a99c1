// Package server exposes the planner over a JSON HTTP API.
//
// Endpoints:
//   - POST   /plans       - generate, persist, and return a plan
//   - GET    /plans       - plan history with ?q= search and ?sort=
//   - GET    /plans/{id}  - one plan
//   - DELETE /plans/{id}  - delete a plan
//   - GET    /health      - health check
//   - GET    /stats       - plan counters for dashboards
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rahul/tripsmith/internal/observability"
	"github.com/rahul/tripsmith/internal/planner"
	"github.com/rahul/tripsmith/internal/store"
)

const (
	// DefaultReadTimeout bounds how long a request body read may take.
	DefaultReadTimeout = 15 * time.Second

	// MaxRequestBodySize caps the request body (64KB); goals are short.
	MaxRequestBodySize = 64 * 1024
)

// Server wires the plan service and store into HTTP handlers.
type Server struct {
	Service *planner.Service
	Store   *store.PlanStore
	Logger  *observability.Logger
	Addr    string
}

func New(service *planner.Service, st *store.PlanStore, logger *observability.Logger, addr string) *Server {
	return &Server{
		Service: service,
		Store:   st,
		Logger:  logger,
		Addr:    addr,
	}
}

// Handler builds the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /plans", s.handleCreatePlan)
	mux.HandleFunc("GET /plans", s.handleListPlans)
	mux.HandleFunc("GET /plans/{id}", s.handleGetPlan)
	mux.HandleFunc("DELETE /plans/{id}", s.handleDeletePlan)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)

	return withRecovery(withRequestLog(s.Logger, mux))
}

// ListenAndServe blocks until the context is canceled or the listener
// fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type createPlanRequest struct {
	Goal string `json:"goal"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	rec, err := s.Service.Generate(r.Context(), req.Goal)
	if err != nil {
		var rejected planner.ErrGoalRejected
		if errors.As(err, &rejected) {
			writeError(w, http.StatusBadRequest, rejected.Reason)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	plans = filterPlans(plans, r.URL.Query().Get("q"))
	sortPlans(plans, r.URL.Query().Get("sort"))

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(plans),
		"plans": plans,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	rec, err := s.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	err = s.Store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Logger.LogPlanDeleted(requestIDFrom(r.Context()), id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	total, err := s.Store.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := map[string]any{
		"total_plans": total,
	}

	plans, err := s.Store.List(r.Context())
	if err == nil && len(plans) > 0 {
		stats["latest_goal"] = truncateGoal(plans[0].Goal, 30)
	}

	writeJSON(w, http.StatusOK, stats)
}

// filterPlans keeps plans whose goal contains the query,
// case-insensitively. An empty query keeps everything.
func filterPlans(plans []planner.PlanRecord, query string) []planner.PlanRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return plans
	}
	filtered := plans[:0]
	for _, p := range plans {
		if strings.Contains(strings.ToLower(p.Goal), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortPlans orders the history view. The store already returns newest
// first, which is also the default here.
func sortPlans(plans []planner.PlanRecord, key string) {
	switch key {
	case "oldest":
		sort.SliceStable(plans, func(i, j int) bool {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		})
	case "goal-asc":
		sort.SliceStable(plans, func(i, j int) bool {
			return plans[i].Goal < plans[j].Goal
		})
	case "goal-desc":
		sort.SliceStable(plans, func(i, j int) bool {
			return plans[i].Goal > plans[j].Goal
		})
	}
}

func truncateGoal(goal string, max int) string {
	if len(goal) <= max {
		return goal
	}
	return goal[:max] + "..."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone already; nothing more to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
