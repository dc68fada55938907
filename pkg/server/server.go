package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	authhandlers "github.com/de-tools/dashboard/pkg/handlers/auth"
	reporthandlers "github.com/de-tools/dashboard/pkg/handlers/reports"
	settingshandlers "github.com/de-tools/dashboard/pkg/handlers/settings"
	dashboardmiddleware "github.com/de-tools/dashboard/pkg/server/middleware"
	"github.com/de-tools/dashboard/pkg/services/auth"
	"github.com/de-tools/dashboard/pkg/services/logo"
	"github.com/de-tools/dashboard/pkg/services/reports"
	"github.com/de-tools/dashboard/pkg/store/assets"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports reports.Service
	Logo    logo.Service
	Assets  assets.Store
	Auth    auth.Service
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	Dependencies    Dependencies
}

// ConfigureRouter mounts every route on a fresh router. Mutating routes sit
// behind RequireAuth.
func ConfigureRouter(logger *zerolog.Logger, config Config) *chi.Mux {
	deps := config.Dependencies
	reportHandler := reporthandlers.NewHandler(deps.Reports)
	settingsHandler := settingshandlers.NewHandler(deps.Logo, deps.Assets, config.MaxUploadBytes)
	authHandler := authhandlers.NewHandler(deps.Auth)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(dashboardmiddleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(dashboardmiddleware.Auth(deps.Auth))

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth", authHandler.Login)
		r.With(dashboardmiddleware.RequireAuth).Get("/auth/validate", authHandler.Validate)

		r.Route("/powerbi", func(r chi.Router) {
			r.Get("/", reportHandler.ListReports)

			r.Group(func(r chi.Router) {
				r.Use(dashboardmiddleware.RequireAuth)
				r.With(dashboardmiddleware.RequireBody("name", "embedUrl")).Post("/", reportHandler.CreateReport)
				r.With(dashboardmiddleware.RequireBody("name", "embedUrl")).Put("/{id}", reportHandler.UpdateReport)
				r.Delete("/{id}", reportHandler.DeleteReport)
			})
		})

		r.Get("/config", settingsHandler.GetConfig)
		r.Group(func(r chi.Router) {
			r.Use(dashboardmiddleware.RequireAuth)
			r.Put("/config/0/logo", settingsHandler.UploadLogo)
			r.Post("/config/0/logo", settingsHandler.UploadLogo)
			r.Delete("/config/0/logo", settingsHandler.DeleteLogo)
		})
	})

	router.Get("/uploads/{filename}", settingsHandler.ServeAsset)

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(&logger, config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Handler() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
