package http

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"requests":  s.tracer.GetMetrics(),
	})
}

// handleReady checks the data backend and reports cache and limiter state.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	switch {
	case s.repo == nil:
		checks["repository"] = "not_configured"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	default:
		var err error
		if p, ok := s.repo.(pinger); ok {
			err = p.Ping(ctx)
		} else {
			_, err = s.repo.ListProperties(ctx)
		}
		if err != nil {
			checks["repository"] = "failed: " + err.Error()
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["repository"] = "ok"
		}
	}

	checks["overview_cache"] = map[string]any{"entries": s.overviewCache.Size()}
	checks["rate_limiter"] = s.rateLimiter.GetMetrics()
	checks["rejected_requests"] = s.detector.SuspiciousCount()

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
