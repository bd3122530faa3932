package main

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hperssn/roomalloc/internal/catalog"
	"github.com/hperssn/roomalloc/internal/config"
	"github.com/hperssn/roomalloc/internal/http"
	"github.com/hperssn/roomalloc/internal/runner"
	"github.com/hperssn/roomalloc/internal/storage"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	repo, err := storage.Open(cfg.Storage, cfg.DSN)
	if err != nil {
		logger.Fatal("failed to open storage", zap.String("storage", cfg.Storage), zap.Error(err))
	}
	defer repo.Close()

	manager := runner.NewRunManager(
		runner.WithRepository(repo),
		runner.WithLogger(logger),
		runner.WithRetention(cfg.Retention),
	)
	defer manager.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(manager, repo, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("storage", cfg.Storage))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zcfg.Build()
}

func newRouter(manager *runner.RunManager, repo storage.Repository, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(ExtractRequesterMiddleware(logger))

	r.Post("/runs", submitRun(manager))
	r.Get("/runs", listRuns(manager))
	r.Get("/runs/{id}", getRun(manager))
	r.Delete("/runs/{id}", deleteRun(manager))
	r.Get("/runs/{id}/events", httpapi.StreamRunEvents(manager))

	r.Get("/history", getHistory(repo, logger))
	r.Get("/history/stats", getHistoryStats(repo, logger))

	r.Handle("/debug/vars", expvar.Handler())

	return r
}

type runResponse struct {
	ID          string                `json:"id"`
	RequestedBy string                `json:"requestedBy"`
	Rooms       []string              `json:"rooms"`
	Assigned    int                   `json:"assigned"`
	Unassigned  int                   `json:"unassignable"`
	StartedAt   time.Time             `json:"startedAt"`
	CompletedAt time.Time             `json:"completedAt"`
	Outcomes    []runner.OutcomeEvent `json:"outcomes"`
}

func newRunResponse(run *runner.Run) runResponse {
	resp := runResponse{
		ID:          run.ID,
		RequestedBy: run.RequestedBy,
		Rooms:       make([]string, len(run.Rooms)),
		Assigned:    run.Summary.Assigned,
		Unassigned:  run.Summary.Unassignable,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		Outcomes:    run.OutcomeEvents(),
	}
	for i, room := range run.Rooms {
		resp.Rooms[i] = room.Code
	}
	return resp
}

func submitRun(m *runner.RunManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := catalog.Decode(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		run, err := m.Submit(GetRequester(r), c.Rooms, c.Sessions)
		if err != nil {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}

		respondJSON(w, newRunResponse(run), http.StatusCreated)
	}
}

func listRuns(m *runner.RunManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs := m.ListRuns()

		resp := make([]runResponse, len(runs))
		for i, run := range runs {
			resp[i] = newRunResponse(run)
		}
		respondJSON(w, resp, http.StatusOK)
	}
}

func getRun(m *runner.RunManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		run, ok := m.GetRun(id)
		if !ok {
			respondError(w, "run not found", http.StatusNotFound)
			return
		}

		respondJSON(w, newRunResponse(run), http.StatusOK)
	}
}

func deleteRun(m *runner.RunManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := m.DeleteRun(id); err != nil {
			respondError(w, err.Error(), http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func getHistory(repo storage.Repository, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := repo.GetRunsByRequester(GetRequester(r))
		if err != nil {
			logger.Error("failed to load history", zap.Error(err))
			respondError(w, "failed to load history", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []storage.RunRecord{}
		}

		respondJSON(w, records, http.StatusOK)
	}
}

func getHistoryStats(repo storage.Repository, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := repo.GetRunStats(GetRequester(r))
		if err != nil {
			logger.Error("failed to load stats", zap.Error(err))
			respondError(w, "failed to load stats", http.StatusInternalServerError)
			return
		}

		respondJSON(w, stats, http.StatusOK)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
