package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/StudyRAG/internal/adapter/utils"
	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/handlers"
	"github.com/akolanti/StudyRAG/internal/middleware"
	"github.com/akolanti/StudyRAG/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// RegisterRoutes mounts every endpoint on r behind the middleware chain.
func RegisterRoutes(r chi.Router, h *handlers.StudyHandler, mcpHandler http.Handler) {
	r.Get("/", middleware.Wrap(handlers.RootHandler))
	r.Post("/upload", middleware.Wrap(h.Upload))
	r.Post("/ask", middleware.Wrap(h.Ask))
	r.Get("/document", middleware.Wrap(h.Document))

	r.Route("/generate", func(g chi.Router) {
		g.Get("/summary", middleware.Wrap(h.Summary))
		g.Get("/flashcards", middleware.Wrap(h.Flashcards))
		g.Get("/quiz", middleware.Wrap(h.Quiz))
		g.Get("/mindmap", middleware.Wrap(h.MindMap))
		g.Post("/audio", middleware.Wrap(h.Audio))
		g.Post("/slides", middleware.Wrap(h.Slides))
	})

	if mcpHandler != nil {
		r.Handle("/mcp", middleware.Handler(mcpHandler))
	}
}

func CreateServer(listenAddr string, h *handlers.StudyHandler, mcpHandler http.Handler) {
	r := utils.GetRouter()
	RegisterRoutes(r.Router, h, mcpHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		//closes qdrant, mongo and redis clients
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
