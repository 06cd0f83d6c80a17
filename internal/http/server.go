package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"conciergerie/internal/cache"
	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/metrics"
	"conciergerie/internal/middleware/ratelimit"
	"conciergerie/internal/middleware/security"
	"conciergerie/internal/middleware/trace"
	"conciergerie/internal/repository"
	"conciergerie/internal/services"
)

// Options carries what the server is built from.
type Options struct {
	Repository repository.Repository
	Aggregator *metrics.Aggregator
	Bookings   *services.BookingService
	Messages   *services.MessageService
	Logger     *log.Logger

	CacheSize          int
	CacheTTL           time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string

	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server

	repo       repository.Repository
	aggregator *metrics.Aggregator
	bookings   *services.BookingService
	messages   *services.MessageService
	logger     *log.Logger
	now        func() time.Time
	started    time.Time

	overviewCache *cache.LRUCache[metrics.Overview]
	overviews     *cache.Loader[metrics.Overview]
	cacheManager  *cache.Manager
	rateLimiter   *ratelimit.Limiter
	detector      *security.Detector
	tracer        *trace.Middleware

	shutdownOnce sync.Once
}

func NewServer(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}

	s := &Server{
		repo:       opts.Repository,
		aggregator: opts.Aggregator,
		bookings:   opts.Bookings,
		messages:   opts.Messages,
		logger:     logger.WithComponent(log.ComponentHTTP),
		now:        now,
		started:    time.Now(),
	}

	s.overviewCache = cache.NewLRUCache[metrics.Overview](opts.CacheSize, opts.CacheTTL)
	s.overviews = cache.NewLoader[metrics.Overview](s.overviewCache)
	s.cacheManager = cache.NewManager(logger)
	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.StartCleanup(time.Minute)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
	s.detector = security.NewDetector(logger)
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, logger)

	var handler http.Handler = s.routes()
	if len(opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", HeaderUserID, HeaderUserRole, trace.RequestIDHeader},
			ExposedHeaders: []string{trace.RequestIDHeader, "Retry-After"},
		}).Handler(handler)
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	limit := s.rateLimiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(RequireIdentity)

		api.With(RequireRole(core.RoleAdmin, core.RoleOwner)).Get("/overview", s.handleOverview)
		api.With(RequireRole(core.RoleAdmin)).Get("/owners", s.handleListOwners)

		api.Get("/properties", s.handleListProperties)
		api.Get("/bookings", s.handleListBookings)
		api.Get("/planning", s.handlePlanning)
		api.Get("/documents", s.handleListDocuments)
		api.Get("/checkins", s.handleListCheckIns)
		api.Get("/checkins/board", s.handleCheckInBoard)
		api.Get("/messages", s.handleListMessages)
		api.Get("/templates", s.handleListTemplates)

		api.Group(func(admin chi.Router) {
			admin.Use(RequireRole(core.RoleAdmin))
			admin.Use(limit)
			admin.Post("/bookings", s.handleCreateBooking)
			admin.Post("/messages", s.handleSendMessage)
		})
	})
	return r
}

// Shutdown stops background work and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// ListenAndServe treats a clean shutdown as success.
func (s *Server) ListenAndServe() error {
	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
