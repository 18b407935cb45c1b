// Package api serves the local web console: the login page and one gated
// dashboard per role.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hoteldesk/internal/app"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/guard"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// settleWait is how long a form post waits for its dispatch before the
// page is shown in the submitting state.
const settleWait = 2 * time.Second

type Server struct {
	container *app.Container
	logger    *zap.Logger
	pages     *pages
	browser   browserAuth
	settle    time.Duration
}

func NewAPIServer(container *app.Container) *Server {
	return &Server{
		container: container,
		logger:    container.Logger.Named("api"),
		pages:     mustParsePages(),
		browser:   browserAuth{store: container.Store, logger: container.Logger.Named("browser")},
		settle:    settleWait,
	}
}

// sections maps the first path segment of each dashboard to its role.
var sections = []struct {
	prefix string
	role   domain.Role
}{
	{"/user", domain.RoleCustomer},
	{"/manager", domain.RoleManager},
	{"/admin", domain.RoleAdmin},
}

func (api *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(api.requestLogger)
	r.Use(api.recoverer)

	r.Get("/", api.handleLoginPage)
	r.Post("/login", api.handleLogin)
	r.Post("/logout", api.handleLogout)

	r.Get("/api/me", api.handleMe)

	sessions := api.container.Session
	for _, s := range sections {
		role := s.role
		r.Route(s.prefix, func(sr chi.Router) {
			sr.Use(guard.Require(sessions, sessions, api.browser, role, api.logger))
			sr.Get("/dashboard", api.handleDashboard(role))
			sr.Post("/dashboard/actions/{actionID}", api.handleSelect(role))
			sr.Post("/dashboard/submit", api.handleSubmit(role))
			sr.Post("/dashboard/cancel", api.handleCancel(role))
			sr.Get("/dashboard/events", api.handleEvents(role))
			sr.Get("/api/actions", api.handleListActions(role))
		})
	}

	r.NotFound(api.handleNotFound)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (api *Server) Start(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		api.logger.Info("console listening", zap.String("addr", listenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("console server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		api.logger.Info("shutting down console")
		return srv.Shutdown(shutdownCtx)
	}
}
