package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"conciergerie/internal/log"
	"conciergerie/internal/metrics"
	"conciergerie/internal/repository"
)

const monthLayout = "2006-01"

// overviewTime resolves ?month=YYYY-MM to noon on the 15th of that month.
// Without it the server clock is used.
func (s *Server) overviewTime(r *http.Request) (time.Time, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return s.now(), true
	}
	m, err := time.Parse(monthLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(m.Year(), m.Month(), 15, 12, 0, 0, 0, time.UTC), true
}

func overviewKey(scope metrics.Scope, now time.Time) string {
	return string(scope.Role) + "|" + scope.IdentityID + "|" + now.Format(monthLayout)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	id, _ := CurrentIdentity(r)
	now, ok := s.overviewTime(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	scope := id.Scope()

	// Concurrent callers share this load, so it must outlive any one request.
	loadCtx := context.WithoutCancel(r.Context())
	ov, hit, err := s.overviews.Get(overviewKey(scope, now), func() (metrics.Overview, error) {
		snap, err := repository.LoadSnapshot(loadCtx, s.repo)
		if err != nil {
			return metrics.Overview{}, err
		}
		return s.aggregator.Compute(snap, scope, now)
	})
	if err != nil {
		writeServiceError(w, r, err, log.OpAggregate)
		return
	}
	// Figures depend on the month only; the timestamp is the caller's.
	ov.Now = now
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, ov)
}
