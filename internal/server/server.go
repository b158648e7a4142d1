package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Flyrell/physiotrack/internal/clinic"
	ptmiddleware "github.com/Flyrell/physiotrack/internal/server/middleware"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *log.Logger
	server          *http.Server
	shutdownTimeout time.Duration
	clinic          *clinic.Service
}

type Dependencies struct {
	Clinic *clinic.Service
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger *log.Logger, config Config) *WebAPI {
	h := NewHandler(config.Dependencies.Clinic)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(ptmiddleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(ptmiddleware.User)

	router.Route("/api", func(r chi.Router) {
		r.Post("/profiles", h.RegisterProfile)
		r.Get("/profiles/me", h.CurrentProfile)
		r.Patch("/profiles/me", h.UpdateProfile)

		r.Get("/athletes/{id}/calendar", h.Calendar)
		r.Get("/athletes/{id}/feedback", h.RecentFeedback)
		r.Get("/athletes/{id}/report.pdf", h.Report)

		r.Post("/feedback", h.SubmitFeedback)

		r.Post("/protocols", h.CreateProtocol)
		r.Post("/protocols/{id}/finish", h.FinishProtocol)

		r.Post("/push/subscriptions", h.SaveSubscription)
		r.Get("/push/test", h.TestNotification)
	})
	router.Get("/workout", h.Workout)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          logger,
		shutdownTimeout: timeout,
		clinic:          config.Dependencies.Clinic,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until SIGINT or SIGTERM and then shuts down gracefully.
func (w *WebAPI) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (w *WebAPI) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info("starting server", "addr", w.server.Addr)
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error("graceful shutdown failed", "err", err)
			err = w.server.Close()
		}

		// Let protocol notifications that are still in flight finish.
		if w.clinic != nil {
			w.clinic.Wait()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
