package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cryptonews/internal/domain"
	"cryptonews/internal/extract"
)

// handleExtract kicks off a batch in the background and responds
// immediately. Results are persisted when the batch finishes; the
// status endpoint exposes progress.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req domain.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Sites) == 0 {
		s.respondWithError(w, http.StatusBadRequest, "Sites list cannot be empty")
		return
	}

	s.mu.Lock()
	if s.current != nil {
		select {
		case <-s.current.Done():
		default:
			s.mu.Unlock()
			s.respondWithError(w, http.StatusConflict, "An extraction batch is already running")
			return
		}
	}
	handle := s.runner.Start(r.Context(), req.Sites)
	s.current = handle
	s.mu.Unlock()

	go s.persistWhenDone(handle)

	s.respondWithJSON(w, http.StatusAccepted, map[string]any{
		"message": "extraction started",
		"sites":   req.Sites,
	})
}

func (s *Server) persistWhenDone(handle *extract.Handle) {
	<-handle.Done()
	res, _ := handle.Result()
	if len(res.Records) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, err := s.saver.SaveItems(ctx, res.Records)
	if err != nil {
		s.logger.Error("failed to persist batch", zap.Error(err))
		return
	}
	s.logger.Info("batch persisted",
		zap.Int("extracted", len(res.Records)),
		zap.Int("inserted", inserted),
		zap.Int("duplicates_skipped", len(res.Records)-inserted))
}

func (s *Server) handleExtractStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	handle := s.current
	s.mu.Unlock()

	if handle == nil {
		s.respondWithJSON(w, http.StatusOK, map[string]any{"state": "idle"})
		return
	}
	res, done := handle.Result()
	if !done {
		s.respondWithJSON(w, http.StatusOK, map[string]any{"state": "running"})
		return
	}
	s.respondWithJSON(w, http.StatusOK, map[string]any{
		"state":    "done",
		"records":  len(res.Records),
		"failures": res.Failures,
		"sites":    res.Sites,
	})
}

func (s *Server) handleRecentNews(w http.ResponseWriter, r *http.Request) {
	records, err := s.news.GetRecentItems(r.Context(), queryLimit(r))
	if err != nil {
		s.logger.Error("failed to read recent news", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve news")
		return
	}
	s.respondWithJSON(w, http.StatusOK, records)
}

func (s *Server) handleNewsBySource(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")
	records, err := s.news.GetItemsBySource(r.Context(), source, queryLimit(r))
	if err != nil {
		s.logger.Error("failed to read news by source",
			zap.String("source", source), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve news")
		return
	}
	s.respondWithJSON(w, http.StatusOK, records)
}

func (s *Server) handleNewsByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "end must be RFC3339")
		return
	}
	records, err := s.news.GetItemsByDateRange(r.Context(), start, end, queryLimit(r))
	if err != nil {
		s.logger.Error("failed to read news by date range", zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not retrieve news")
		return
	}
	s.respondWithJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	status := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status[name] = "unhealthy"
			healthy = false
			s.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
		} else {
			status[name] = "healthy"
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	s.respondWithJSON(w, code, status)
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return 50
	}
	return limit
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
