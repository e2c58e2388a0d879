package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/teemow/calbridge/internal/config"
	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
)

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// Server is the REST adapter over the integration service.
type Server struct {
	svc        *service.Service
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	router     *mux.Router
	httpServer *http.Server
}

// NewServer builds the REST adapter with its routes wired.
func NewServer(sc *server.ServerContext, cfg *config.Config) *Server {
	s := &Server{
		svc:     sc.Service(),
		cfg:     cfg,
		logger:  sc.Logger(),
		metrics: sc.Metrics(),
	}
	s.router = s.newRouter()
	return s
}

// newRouter wires all routes. Table routes carry the table name in the
// path and are checked against the configured allow-list.
func (s *Server) newRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(s.recoverMiddleware)
	router.Use(s.observeMiddleware)

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	router.HandleFunc("/calendar/events", s.handleCreateEvent).Methods(http.MethodPost)
	router.HandleFunc("/calendar/events", s.handleListEvents).Methods(http.MethodGet)
	router.HandleFunc("/calendar/check-availability", s.handleCheckAvailability).Methods(http.MethodPost)

	router.HandleFunc("/airtable/{table_name}", s.handleListRecords).Methods(http.MethodGet)
	router.HandleFunc("/airtable/{table_name}", s.handleCreateRecord).Methods(http.MethodPost)

	router.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	router.HandleFunc("/contacts/search", s.handleSearchContacts).Methods(http.MethodPost)
	router.HandleFunc("/reminders", s.handleCreateReminder).Methods(http.MethodPost)

	return router
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// tableAllowed consults the configured allow-list. An empty list
// permits every table.
func (s *Server) tableAllowed(table string) bool {
	if s.cfg == nil {
		return true
	}
	return s.cfg.TableAllowed(table)
}

// Start serves HTTP on the configured address, blocking until the
// listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := ":8000"
	if s.cfg != nil {
		addr = s.cfg.HTTPAddr()
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}

	s.logger.Info("starting http server", slog.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
