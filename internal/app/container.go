package app

import (
	"encoding/json"
	"fmt"

	"hoteldesk/internal/action"
	"hoteldesk/internal/config"
	"hoteldesk/internal/dashboard"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/registry"
	"hoteldesk/internal/session"
	"hoteldesk/internal/storage"
	"hoteldesk/internal/ws"
	"hoteldesk/pkg/sdk"

	"go.uber.org/zap"
)

// Container wires the pieces both front ends share.
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       *storage.GormStore
	Client      *sdk.Client
	Session     *session.Store
	Controllers map[domain.Role]*dashboard.Controller
	// Events carries dashboard transitions to the web console, one hub per role.
	Events *ws.HubManager
}

func New(cfg *config.Config, logger *zap.Logger, opts ...sdk.Option) (*Container, error) {
	store, err := storage.NewGormStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("could not open client database: %w", err)
	}

	client := sdk.NewClient(cfg.BackendURL, opts...)
	sessions, err := session.NewStore(store, client,
		session.WithTokenHolder(client),
		session.WithLogger(logger.Named("session")),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Client:      client,
		Session:     sessions,
		Controllers: make(map[domain.Role]*dashboard.Controller),
		Events:      ws.NewHubManager(logger.Named("events")),
	}
	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleManager, domain.RoleAdmin} {
		reg, _ := registry.ForRole(role, client)
		c.Controllers[role] = dashboard.New(
			action.NewDispatcher(reg, logger.Named("dispatch")),
			sessions,
			dashboard.WithTimeout(cfg.Timeout()),
			dashboard.WithLogger(logger.Named("dashboard")),
			dashboard.WithObserver(c.publish(role)),
		)
	}
	return c, nil
}

// Controller returns the dashboard of a role.
func (c *Container) Controller(role domain.Role) (*dashboard.Controller, bool) {
	ctrl, ok := c.Controllers[role]
	return ctrl, ok
}

func (c *Container) publish(role domain.Role) func(dashboard.Event) {
	hub := c.Events.GetHub(string(role))
	return func(ev dashboard.Event) {
		msg, err := json.Marshal(ev)
		if err != nil {
			c.Logger.Error("encoding dashboard event", zap.Error(err))
			return
		}
		hub.Publish(msg)
	}
}

func (c *Container) Close() error {
	c.Events.StopAll()
	return c.Store.Close()
}
