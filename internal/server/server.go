package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"invaderdeck/internal/config"
	"invaderdeck/internal/journal"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	cfg      config.Config
	logger   *log.Logger
	http     *http.Server
}

// New builds a server. A nil journal disables the action log, a nil logger
// uses the standard logger.
func New(cfg config.Config, j *journal.Writer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		handlers: NewHandlers(cfg, j, logger),
		cfg:      cfg,
		logger:   logger,
	}
	s.http = &http.Server{Addr: cfg.ListenAddr, Handler: s.Handler()}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/tables", s.handlers.HandleCreateTable)
	mux.HandleFunc("GET /api/tables", s.handlers.HandleCreateTable)
	mux.HandleFunc("GET /api/tables/{id}", s.handlers.HandleTable)
	mux.HandleFunc("GET /api/qr", s.handlers.HandleQR)
	mux.HandleFunc("GET /api/client-id", s.handlers.HandleClientID)
	mux.HandleFunc("GET /ws", s.handlers.HandleWS)
	return mux
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Printf("invader deck server starting on %s", s.cfg.ListenAddr)
	s.logger.Printf("POST %s/api/tables to create a new table", s.cfg.ListenAddr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and disconnects every table.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.handlers.StopAll()
	return err
}
