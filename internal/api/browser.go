package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"hoteldesk/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookie = "hoteldesk_session"

// browserAuth binds the active session to the browser that signed in. The
// token is kept next to the session in the client store, so a new login or
// a logout revokes it.
type browserAuth struct {
	store  *storage.GormStore
	logger *zap.Logger
}

func (b browserAuth) issue(w http.ResponseWriter) error {
	token := uuid.NewString()
	if err := b.store.SetSetting(storage.ScopeLocal, storage.KeyBrowserToken, token); err != nil {
		return fmt.Errorf("error storing browser token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Holds reports whether the request carries the cookie of the bound browser.
func (b browserAuth) Holds(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	want, ok, err := b.store.GetSetting(storage.KeyBrowserToken)
	if err != nil {
		b.logger.Warn("reading browser token", zap.Error(err))
		return false
	}
	return ok && subtle.ConstantTimeCompare([]byte(c.Value), []byte(want)) == 1
}

func (b browserAuth) revoke() {
	if err := b.store.DeleteSetting(storage.KeyBrowserToken); err != nil {
		b.logger.Warn("revoking browser token", zap.Error(err))
	}
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
