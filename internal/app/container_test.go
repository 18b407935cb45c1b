package app

import (
	"path/filepath"
	"testing"

	"hoteldesk/internal/config"
	"hoteldesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWiresEveryRole(t *testing.T) {
	cfg := &config.Config{
		BackendURL:      "http://localhost:1",
		DatabasePath:    filepath.Join(t.TempDir(), "client.db"),
		DispatchTimeout: "2s",
	}

	c, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleManager, domain.RoleAdmin} {
		ctrl, ok := c.Controller(role)
		require.True(t, ok, role)
		assert.Equal(t, role, ctrl.Registry().Role())
	}

	_, ok := c.Session.Current()
	assert.False(t, ok)
}

func TestCloseStopsEventHubs(t *testing.T) {
	cfg := &config.Config{
		BackendURL:   "http://localhost:1",
		DatabasePath: filepath.Join(t.TempDir(), "client.db"),
	}
	c, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	ctrl, _ := c.Controller(domain.RoleManager)
	_, err = ctrl.Select("getRoomById")
	require.NoError(t, err)

	require.NoError(t, c.Close())
	// Transitions after close are dropped, never blocking.
	ctrl.Cancel()
}
