package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/datastore"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/logging"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/observability"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for the rock bee monitoring backend.
// It manages the Echo framework instance, middleware, and all HTTP routes.
type Server struct {
	echo     *echo.Echo
	settings *conf.Settings
	slogger  *slog.Logger

	// Dependencies
	dataStore  datastore.Interface
	classifier Classifier
	metrics    *observability.Metrics

	// API controller
	apiController *Controller
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithDataStore sets the datastore for the server.
func WithDataStore(ds datastore.Interface) ServerOption {
	return func(s *Server) {
		s.dataStore = ds
	}
}

// WithClassifier sets the image classifier for the server.
func WithClassifier(clf Classifier) ServerOption {
	return func(s *Server) {
		s.classifier = clf
	}
}

// WithMetrics sets the shared metrics instance for the server.
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// NewServer creates a new HTTP server with the given settings and options.
func NewServer(settings *conf.Settings, opts ...ServerOption) (*Server, error) {
	s := &Server{
		settings: settings,
		slogger:  logging.ForService("server"),
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}

	if s.dataStore == nil {
		return nil, fmt.Errorf("server requires a datastore")
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("server requires a classifier")
	}

	// Initialize Echo
	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.setupMiddleware()

	apiController, err := New(s.echo, s.dataStore, s.settings, s.classifier, s.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API controller: %w", err)
	}
	s.apiController = apiController

	if s.slogger != nil {
		s.slogger.Info("HTTP server initialized",
			"address", s.address(),
			"debug", settings.Debug,
		)
	}

	return s, nil
}

// setupMiddleware configures the Echo middleware stack.
func (s *Server) setupMiddleware() {
	// Recovery middleware - should be first
	s.echo.Use(echomw.Recover())

	s.echo.Use(echomw.RequestID())

	// CORS middleware, the API is consumed by browser frontends
	s.echo.Use(echomw.CORS())

	// Gzip compression
	s.echo.Use(echomw.Gzip())
}

// address returns the host:port the server binds to.
func (s *Server) address() string {
	return s.settings.WebServer.Host + ":" + s.settings.WebServer.Port
}

// Start runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// gracefully.
func (s *Server) Start() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.echo.Start(s.address()); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	if s.slogger != nil {
		s.slogger.Info("HTTP server started", "address", s.address())
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		if s.slogger != nil {
			s.slogger.Info("Shutting down server", "signal", sig.String())
		}
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server and releases controller resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	s.apiController.Shutdown()
	return err
}
