// Package server exposes alignment sessions over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/inodb/vibe-align/internal/session"
)

// Server routes HTTP requests to a session manager.
type Server struct {
	sessions *session.Manager
	logger   *zap.Logger
	router   chi.Router
}

// New creates a server backed by sessions.
func New(sessions *session.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{sessions: sessions, logger: logger}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/alignments", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)

		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/history", s.handleHistory)

			r.Post("/gap-columns", s.edit(gapColumns))
			r.Post("/remove-gap-columns", s.edit(removeGapColumns))
			r.Post("/slide", s.edit(slide))
			r.Post("/extend-left", s.edit(sided(session.Extend, session.Left)))
			r.Post("/extend-right", s.edit(sided(session.Extend, session.Right)))
			r.Post("/trim-left", s.edit(sided(session.Trim, session.Left)))
			r.Post("/trim-right", s.edit(sided(session.Trim, session.Right)))
			r.Post("/level-left", s.edit(sided(session.Level, session.Left)))
			r.Post("/level-right", s.edit(sided(session.Level, session.Right)))
			r.Post("/collapse-left", s.edit(collapse(session.Left)))
			r.Post("/collapse-right", s.edit(collapse(session.Right)))
			r.Post("/anchor", s.edit(anchor))
			r.Post("/move-rows", s.edit(moveRows))
			r.Post("/remove-rows", s.edit(removeRows))

			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
		})
	})

	return r
}

// requestLogger logs one line per request once the handler returns.
func requestLogger(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				l.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
					zap.String("request_id", chimiddleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
