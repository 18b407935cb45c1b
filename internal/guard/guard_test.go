package guard

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hoteldesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReader struct {
	sess *domain.Session
}

func (s staticReader) Current() (domain.Session, bool) {
	if s.sess == nil {
		return domain.Session{}, false
	}
	return *s.sess, true
}

type recorder struct {
	paths []string
	err   error
}

func (r *recorder) RememberRedirect(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

// headerToken holds when the request carries the expected X-Token.
type headerToken string

func (h headerToken) Holds(req *http.Request) bool {
	return req.Header.Get("X-Token") == string(h)
}

func TestCheck(t *testing.T) {
	manager := &domain.Session{SubjectID: "1", Role: domain.RoleManager}

	tests := []struct {
		name     string
		reader   staticReader
		required domain.Role
		reason   Reason
		redirect string
	}{
		{"no session", staticReader{}, domain.RoleManager, NoSession, "/"},
		{"wrong role", staticReader{sess: manager}, domain.RoleAdmin, WrongRole, "/"},
		{"matching role", staticReader{sess: manager}, domain.RoleManager, Allowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.reader, tt.required)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.redirect, d.Redirect)
		})
	}
}

func TestLandingAndRoleFor(t *testing.T) {
	assert.Equal(t, "/user/dashboard", Landing(domain.RoleCustomer))
	assert.Equal(t, "/manager/dashboard", Landing(domain.RoleManager))
	assert.Equal(t, "/admin/dashboard", Landing(domain.RoleAdmin))
	assert.Equal(t, LoginPath, Landing(domain.Role("GUEST")))

	role, ok := RoleFor("/manager/dashboard")
	require.True(t, ok)
	assert.Equal(t, domain.RoleManager, role)

	_, ok = RoleFor("/elsewhere")
	assert.False(t, ok)
}

func TestAfterLogin(t *testing.T) {
	customer := domain.Session{Role: domain.RoleCustomer}

	assert.Equal(t, "/user/dashboard", AfterLogin(customer, ""))
	assert.Equal(t, "/user/dashboard/actions/getBookings", AfterLogin(customer, "/user/dashboard/actions/getBookings"))
	assert.Equal(t, "/user/dashboard", AfterLogin(customer, "/admin/dashboard"))
}

func TestRequireMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, found := FromContext(r.Context())
		assert.True(t, found)
		_, _ = w.Write([]byte(sess.SubjectID))
	})

	t.Run("no session remembers path", func(t *testing.T) {
		rec := &recorder{}
		h := Require(staticReader{}, rec, nil, domain.RoleAdmin, nil)(ok)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Equal(t, []string{"/admin/dashboard"}, rec.paths)
	})

	t.Run("wrong role does not remember path", func(t *testing.T) {
		rec := &recorder{}
		sess := &domain.Session{SubjectID: "9", Role: domain.RoleManager}
		h := Require(staticReader{sess: sess}, rec, nil, domain.RoleAdmin, nil)(ok)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Empty(t, rec.paths)
	})

	t.Run("recorder failure still redirects", func(t *testing.T) {
		rec := &recorder{err: errors.New("disk full")}
		h := Require(staticReader{}, rec, nil, domain.RoleAdmin, nil)(ok)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("posts and upgrades are not remembered", func(t *testing.T) {
		rec := &recorder{}
		h := Require(staticReader{}, rec, nil, domain.RoleAdmin, nil)(ok)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/admin/dashboard/submit", nil))
		upgrade := httptest.NewRequest(http.MethodGet, "/admin/dashboard/events", nil)
		upgrade.Header.Set("Upgrade", "websocket")
		h.ServeHTTP(httptest.NewRecorder(), upgrade)

		assert.Empty(t, rec.paths)
	})

	t.Run("matching role passes session on", func(t *testing.T) {
		sess := &domain.Session{SubjectID: "9", Role: domain.RoleAdmin}
		h := Require(staticReader{sess: sess}, &recorder{}, nil, domain.RoleAdmin, nil)(ok)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "9", w.Body.String())
	})

	t.Run("session held by another client", func(t *testing.T) {
		rec := &recorder{}
		sess := &domain.Session{SubjectID: "9", Role: domain.RoleAdmin}
		h := Require(staticReader{sess: sess}, rec, headerToken("t1"), domain.RoleAdmin, nil)(ok)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Empty(t, rec.paths)

		held := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		held.Header.Set("X-Token", "t1")
		w = httptest.NewRecorder()
		h.ServeHTTP(w, held)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no session still remembers path with a credential", func(t *testing.T) {
		rec := &recorder{}
		h := Require(staticReader{}, rec, headerToken("t1"), domain.RoleAdmin, nil)(ok)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		assert.Equal(t, []string{"/admin/dashboard"}, rec.paths)
	})
}
