package storage

import (
	"path/filepath"
	"testing"

	"hoteldesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) *GormStore {
	t.Helper()
	store, err := NewGormStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "client.db"))

	loaded, err := store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	sess := domain.Session{SubjectID: "7", DisplayName: "Ana", Email: "ana@hotel.test", Role: domain.RoleManager, AuthToken: "tok"}
	require.NoError(t, store.SaveSession(sess))

	loaded, err = store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess, *loaded)

	userID, ok, err := store.GetSetting("userId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", userID)

	require.NoError(t, store.ClearSession())
	loaded, err = store.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestPendingRedirectIsConsumedOnce(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "client.db"))

	require.NoError(t, store.SetPendingRedirect("/manager/dashboard"))

	path, err := store.TakePendingRedirect()
	require.NoError(t, err)
	assert.Equal(t, "/manager/dashboard", path)

	path, err = store.TakePendingRedirect()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSessionScopeDoesNotSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	first, err := NewGormStore(path)
	require.NoError(t, err)
	require.NoError(t, first.SetPendingRedirect("/admin/dashboard"))
	require.NoError(t, first.SaveSession(domain.Session{SubjectID: "1", Role: domain.RoleAdmin, AuthToken: "tok"}))
	require.NoError(t, first.Close())

	second := newTestStore(t, path)

	redirect, err := second.TakePendingRedirect()
	require.NoError(t, err)
	assert.Empty(t, redirect)

	sess, err := second.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
}

func TestBrowserTokenFollowsSession(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "client.db"))
	sess := domain.Session{SubjectID: "7", Role: domain.RoleAdmin, AuthToken: "tok"}

	require.NoError(t, store.SaveSession(sess))
	require.NoError(t, store.SetSetting(ScopeLocal, KeyBrowserToken, "b1"))
	token, ok, err := store.GetSetting(KeyBrowserToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b1", token)

	// A new login unbinds the previous browser.
	require.NoError(t, store.SaveSession(sess))
	_, ok, err = store.GetSetting(KeyBrowserToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetSetting(ScopeLocal, KeyBrowserToken, "b2"))
	require.NoError(t, store.ClearSession())
	_, ok, err = store.GetSetting(KeyBrowserToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetSetting(ScopeLocal, KeyBrowserToken, "b3"))
	require.NoError(t, store.DeleteSetting(KeyBrowserToken))
	_, ok, err = store.GetSetting(KeyBrowserToken)
	require.NoError(t, err)
	assert.False(t, ok)
}
