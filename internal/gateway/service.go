package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/monitoring"
)

// Service implements the API Gateway
type Service struct {
	router         *mux.Router
	server         *http.Server
	rateLimiter    interfaces.RateLimiter
	tokenValidator interfaces.TokenValidator
	services       map[string]*backend
	servicesMux    sync.RWMutex
	logger         *logger.Logger
	metrics        *monitoring.MetricsCollector
	health         *monitoring.HealthManager
	startTime      time.Time
}

// backend holds the proxy state for one registered service
type backend struct {
	url   *url.URL
	proxy *httputil.ReverseProxy
}

// NewService creates a new API Gateway service wired to the portal
// services configured in cfg.Services
func NewService(cfg *config.Config, log *logger.Logger) *Service {
	s := &Service{
		router:    mux.NewRouter(),
		services:  make(map[string]*backend),
		logger:    log,
		metrics:   monitoring.NewMetricsCollector("api-gateway"),
		health:    monitoring.NewHealthManager("api-gateway", "1.0.0"),
		startTime: time.Now(),
	}

	s.rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, time.Minute)
	s.tokenValidator = NewTokenValidator(cfg.JWT.SecretKey)

	for name, serviceURL := range map[string]string{
		"medications":   cfg.Services.Medications,
		"care-plans":    cfg.Services.CarePlans,
		"notifications": cfg.Services.Notifications,
		"users":         cfg.Services.Users,
	} {
		if serviceURL == "" {
			continue
		}
		if err := s.RegisterService(name, serviceURL); err != nil {
			log.Errorf("Failed to register service %s: %v", name, err)
		}
	}

	s.setupRoutes()
	s.setupMiddleware()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return s
}

// ValidateToken validates a JWT token and returns user claims
func (s *Service) ValidateToken(tokenString string) (*UserClaims, error) {
	return s.tokenValidator.ValidateJWT(tokenString)
}

// ApplyRateLimit applies rate limiting for a user
func (s *Service) ApplyRateLimit(userID string) error {
	allowed, err := s.rateLimiter.Allow(userID)
	if err != nil {
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return fmt.Errorf("rate limit exceeded for user %s", userID)
	}
	return nil
}

// StartRateLimiterCleanup starts background eviction of idle rate
// limit buckets
func (s *Service) StartRateLimiterCleanup(interval time.Duration) {
	s.rateLimiter.StartCleanup(interval)
}

// RegisterService registers a backend service under a route prefix
func (s *Service) RegisterService(name, serviceURL string) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid service URL: %w", err)
	}

	s.servicesMux.Lock()
	s.services[name] = &backend{
		url:   parsedURL,
		proxy: httputil.NewSingleHostReverseProxy(parsedURL),
	}
	s.servicesMux.Unlock()

	s.health.RegisterChecker(name, monitoring.NewHTTPHealthChecker(serviceURL+"/api/v1/health", 5*time.Second))

	s.logger.WithField("service", name).Infof("Registered service at %s", serviceURL)
	return nil
}

// UnregisterService removes a backend service
func (s *Service) UnregisterService(name string) error {
	s.servicesMux.Lock()
	delete(s.services, name)
	s.servicesMux.Unlock()

	s.health.UnregisterChecker(name)

	s.logger.WithField("service", name).Info("Unregistered service")
	return nil
}

// lookupBackend resolves a registered backend by name
func (s *Service) lookupBackend(name string) (*backend, bool) {
	s.servicesMux.RLock()
	defer s.servicesMux.RUnlock()

	b, ok := s.services[name]
	return b, ok
}

// Start starts the API Gateway server
func (s *Service) Start(addr string) error {
	if addr != "" {
		s.server.Addr = addr
	}

	s.logger.Infof("Starting API Gateway on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the API Gateway server
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("Stopping API Gateway")
	return s.server.Shutdown(ctx)
}

// setupRoutes sets up the routing
func (s *Service) setupRoutes() {
	// Health and metrics endpoints
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.Handle("/health/detailed", s.health.HTTPHandler()).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	// Service management endpoints
	s.router.HandleFunc("/admin/services", s.handleListServices).Methods("GET")
	s.router.HandleFunc("/admin/services/{name}", s.handleRegisterService).Methods("POST")
	s.router.HandleFunc("/admin/services/{name}", s.handleUnregisterService).Methods("DELETE")

	// All portal API traffic goes through the proxy handler
	s.router.PathPrefix("/api/v1/").HandlerFunc(s.handleProxy)
}

// setupMiddleware sets up middleware
func (s *Service) setupMiddleware() {
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.securityHeadersMiddleware)
	s.router.Use(s.metrics.HTTPMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.authMiddleware)
	s.router.Use(s.roleMiddleware)
	s.router.Use(s.rateLimitMiddleware)
}
