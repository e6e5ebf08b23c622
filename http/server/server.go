// Package server provides the HTTP read API for task history, along with
// readiness and metrics endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	PathHealth      = "/health"
	PathMetrics     = "/metrics"
	PathTaskHistory = "/v1/task-history/{taskId}"
)

func New(tracker *history.Tracker, logger *zap.Logger, customizers ...func(*Options)) (*Server, error) {
	if tracker == nil {
		return nil, errors.New("tracker is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	server := Server{
		tracker: tracker,
		logger:  logger,
		options: options,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get(PathHealth, server.checkReadiness)
	router.Get(PathMetrics, promhttp.Handler().ServeHTTP)
	router.Get(PathTaskHistory, server.getTaskHistory)

	var handler http.Handler = router
	if options.BasicAuthUsername != "" {
		handler = &basicAuthHandler{
			username: options.BasicAuthUsername,
			password: options.BasicAuthPassword,
			handler:  router,
		}
	}

	// server-wide context for incoming requests
	httpServerCtx, httpServerCancel := context.WithCancel(context.Background())

	server.httpServer = &http.Server{
		Addr: options.BindAddress,
		BaseContext: func(_ net.Listener) context.Context {
			return httpServerCtx
		},
		Handler:      http.TimeoutHandler(handler, options.HandlerTimeout, "handler timed out"),
		IdleTimeout:  options.IdleTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
	}
	server.httpServerCancel = httpServerCancel

	return &server, nil
}

func NewOptions() Options {
	return Options{
		BindAddress: "127.0.0.1:8080",

		HandlerTimeout: 30 * time.Second,
		IdleTimeout:    60 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   35 * time.Second,

		ShutdownDelay:  5 * time.Second,
		ShutdownPeriod: 30 * time.Second,
	}
}

type Options struct {
	BindAddress string // TCP address for the server to listen on.

	HandlerTimeout time.Duration // Time limit for HTTP handler - when reached, the handler responds with HTTP 503.
	IdleTimeout    time.Duration // Maximum amount of time to wait for the next request, when keep-alives are enabled.
	ReadTimeout    time.Duration // Maximum duration for reading the entire request - see http.Server#ReadTimeout
	WriteTimeout   time.Duration // Maximum duration before timing out writing the response - see http.Server#WriteTimeout

	ShutdownDelay  time.Duration // Delay between the shutdown signal and the actual shutdown, used to propagate readiness.
	ShutdownPeriod time.Duration // Period for a graceful shutdown without interrupting ongoing requests.

	BasicAuthUsername string // Optional. When set, all endpoints except health require basic auth.
	BasicAuthPassword string
}

func (o Options) Validate() error {
	if o.BindAddress == "" {
		return errors.New("option BindAddress is empty")
	}
	if o.BasicAuthUsername != "" && o.BasicAuthPassword == "" {
		return errors.New("option BasicAuthPassword is empty, but BasicAuthUsername is set")
	}
	return nil
}

type Server struct {
	tracker          *history.Tracker
	logger           *zap.Logger
	httpServer       *http.Server
	httpServerCancel context.CancelFunc // invoked after server shutdown to cancel ongoing requests
	isShuttingDown   atomic.Bool
	options          Options
}

func (s *Server) ListenAndServe() {
	go func() {
		s.logger.Info("server listening", zap.String("bindAddress", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Fatal("failed to listen and serve HTTP", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown() {
	s.isShuttingDown.Store(true)
	s.logger.Info("server is shutting down")

	time.Sleep(s.options.ShutdownDelay)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.options.ShutdownPeriod)
	defer shutdownCancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.httpServerCancel()
	if err != nil {
		s.logger.Error("failed to shutdown HTTP server", zap.Error(err))
	}

	s.logger.Info("server shut down")
}

// Response of a task history query. Results are in recording order.
type TaskHistoryRes struct {
	Count   int             `json:"count" validate:"required,gte=0"`
	Results []history.Entry `json:"results" validate:"required"`
}

func (s *Server) getTaskHistory(w http.ResponseWriter, r *http.Request) {
	taskId := chi.URLParam(r, "taskId")
	if taskId == "" {
		s.encodeJSONProblemResponseBody(w, r, Problem{
			Status: http.StatusBadRequest,
			Type:   ProblemHttpRequestUri,
			Title:  "invalid task history request",
			Detail: "task ID is empty",
		})
		return
	}

	entries, err := s.tracker.History(r.Context(), taskId)
	if err != nil {
		s.encodeJSONProblemResponseBody(w, r, err)
		return
	}

	s.encodeJSONResponseBody(w, r, TaskHistoryRes{
		Count:   len(entries),
		Results: entries,
	}, http.StatusOK)
}

func (s *Server) checkReadiness(w http.ResponseWriter, _ *http.Request) {
	if s.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
}

type basicAuthHandler struct {
	username string
	password string
	handler  http.Handler
}

func (h *basicAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == PathHealth {
		h.handler.ServeHTTP(w, r)
		return
	}

	username, password, ok := r.BasicAuth()
	if !ok || username != h.username || password != h.password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	h.handler.ServeHTTP(w, r)
}
