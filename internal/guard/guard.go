// Package guard gates dashboards on session presence and role.
package guard

import (
	"context"
	"net/http"
	"strings"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/session"

	"go.uber.org/zap"
)

const LoginPath = "/"

var dashboards = map[domain.Role]string{
	domain.RoleCustomer: "/user/dashboard",
	domain.RoleManager:  "/manager/dashboard",
	domain.RoleAdmin:    "/admin/dashboard",
}

var sections = map[string]domain.Role{
	"user":    domain.RoleCustomer,
	"manager": domain.RoleManager,
	"admin":   domain.RoleAdmin,
}

// Landing is the dashboard a role lands on after login.
func Landing(role domain.Role) string {
	if path, ok := dashboards[role]; ok {
		return path
	}
	return LoginPath
}

// RoleFor reports which role a gated path belongs to.
func RoleFor(path string) (domain.Role, bool) {
	section, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	role, ok := sections[section]
	return role, ok
}

type Reason int

const (
	Allowed Reason = iota
	NoSession
	WrongRole
	// Unbound means a session exists but the requester is not the client it
	// was issued to.
	Unbound
)

func (r Reason) String() string {
	switch r {
	case Allowed:
		return "allowed"
	case NoSession:
		return "no session"
	case Unbound:
		return "unbound client"
	default:
		return "wrong role"
	}
}

type Decision struct {
	Reason   Reason
	Redirect string
	Session  domain.Session
}

func (d Decision) Allowed() bool { return d.Reason == Allowed }

// Check decides whether the current session may see a subtree gated on the
// required role.
func Check(r session.Reader, required domain.Role) Decision {
	sess, ok := r.Current()
	if !ok {
		return Decision{Reason: NoSession, Redirect: LoginPath}
	}
	if sess.Role != required {
		return Decision{Reason: WrongRole, Redirect: LoginPath, Session: sess}
	}
	return Decision{Reason: Allowed, Session: sess}
}

// AfterLogin picks where a fresh session goes: the pending redirect when it
// leads somewhere the session may go, its own dashboard otherwise.
func AfterLogin(sess domain.Session, pending string) string {
	if pending != "" {
		if role, ok := RoleFor(pending); ok && role == sess.Role {
			return pending
		}
	}
	return Landing(sess.Role)
}

type RedirectRecorder interface {
	RememberRedirect(path string) error
}

// Credential tells whether a request comes from the client the active
// session is bound to.
type Credential interface {
	Holds(req *http.Request) bool
}

type contextKey string

const sessionKey contextKey = "session"

// Require is the HTTP form of Check, applied per requester: when cred is
// set, a request that does not hold it is turned away even while a session
// is active. A request turned away for lack of a session has its path
// remembered for after login.
func Require(r session.Reader, rec RedirectRecorder, cred Credential, required domain.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			d := Check(r, required)
			if d.Reason != NoSession && cred != nil && !cred.Holds(req) {
				d = Decision{Reason: Unbound, Redirect: LoginPath}
			}
			if !d.Allowed() {
				if d.Reason == NoSession && rememberable(req) && rec != nil {
					if err := rec.RememberRedirect(req.URL.Path); err != nil {
						logger.Warn("could not remember redirect", zap.String("path", req.URL.Path), zap.Error(err))
					}
				}
				logger.Debug("guard redirect",
					zap.String("path", req.URL.Path),
					zap.String("required", string(required)),
					zap.Stringer("reason", d.Reason),
				)
				http.Redirect(w, req, d.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), sessionKey, d.Session)))
		})
	}
}

// rememberable is true for page loads; websocket upgrades and form posts
// are not places to come back to.
func rememberable(req *http.Request) bool {
	return req.Method == http.MethodGet && req.Header.Get("Upgrade") == ""
}

// FromContext returns the session Require admitted the request with.
func FromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(domain.Session)
	return sess, ok
}
