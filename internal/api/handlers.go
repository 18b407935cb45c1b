package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hoteldesk/internal/action"
	"hoteldesk/internal/dashboard"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/guard"
	"hoteldesk/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (api *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := api.container.Session.Current(); ok && api.browser.Holds(r) {
		http.Redirect(w, r, guard.Landing(sess.Role), http.StatusSeeOther)
		return
	}
	api.pages.render(w, api.logger, http.StatusOK, "login.html", loginPage{})
}

func (api *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	password := r.PostForm.Get("password")

	sess, pending, err := api.container.Session.Login(r.Context(), email, password)
	if err != nil {
		api.pages.render(w, api.logger, http.StatusUnauthorized, "login.html", loginPage{
			Email: email,
			Error: session.LoginFailedMessage,
		})
		return
	}

	if err := api.browser.issue(w); err != nil {
		api.logger.Error("binding session to browser", zap.Error(err))
		if err := api.container.Session.Logout(); err != nil {
			api.logger.Warn("logout", zap.Error(err))
		}
		api.pages.render(w, api.logger, http.StatusInternalServerError, "login.html", loginPage{
			Email: email,
			Error: session.LoginFailedMessage,
		})
		return
	}

	api.resetDashboards()
	http.Redirect(w, r, guard.AfterLogin(sess, pending), http.StatusSeeOther)
}

// handleLogout ends the session only for the browser it is bound to; any
// other client just loses its stale cookie.
func (api *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if api.browser.Holds(r) {
		api.browser.revoke()
		if err := api.container.Session.Logout(); err != nil {
			api.logger.Warn("logout", zap.Error(err))
		}
		api.resetDashboards()
	}
	clearCookie(w)
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

func (api *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.container.Session.Current()
	if !ok || !api.browser.Holds(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (api *Server) handleDashboard(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := api.container.Controller(role)
		if !ok {
			api.handleNotFound(w, r)
			return
		}
		sess, _ := guard.FromContext(r.Context())
		page := newDashboardPage(sess, ctrl.Registry(), guard.Landing(role), ctrl.Snapshot())
		api.pages.render(w, api.logger, http.StatusOK, "dashboard.html", page)
	}
}

func (api *Server) handleSelect(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := api.container.Controller(role)
		if !ok {
			api.handleNotFound(w, r)
			return
		}
		req, err := ctrl.Select(chi.URLParam(r, "actionID"))
		if err != nil {
			api.controllerError(w, r, err)
			return
		}
		api.dispatch(r, ctrl, req)
		http.Redirect(w, r, guard.Landing(role), http.StatusSeeOther)
	}
}

func (api *Server) handleSubmit(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := api.container.Controller(role)
		if !ok {
			api.handleNotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		snap := ctrl.Snapshot()
		if snap.Selected == nil {
			http.Redirect(w, r, guard.Landing(role), http.StatusSeeOther)
			return
		}
		for _, f := range snap.Selected.Fields {
			if err := ctrl.SetField(f.Name, r.PostForm.Get(f.Name)); err != nil {
				api.controllerError(w, r, err)
				return
			}
		}

		req, err := ctrl.Submit()
		if err != nil {
			api.controllerError(w, r, err)
			return
		}
		api.dispatch(r, ctrl, req)
		http.Redirect(w, r, guard.Landing(role), http.StatusSeeOther)
	}
}

func (api *Server) handleCancel(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctrl, ok := api.container.Controller(role); ok {
			ctrl.Cancel()
		}
		http.Redirect(w, r, guard.Landing(role), http.StatusSeeOther)
	}
}

// handleEvents streams the role's dashboard transitions so a page left in the
// submitting state can refresh once the outcome is in.
func (api *Server) handleEvents(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.container.Events.GetHub(string(role)).ServeWs(w, r)
	}
}

// dispatch runs req detached from the request and waits up to the settle
// window for it. Slower calls finish in the background; Cancel still
// reaches them through the controller.
func (api *Server) dispatch(r *http.Request, ctrl *dashboard.Controller, req *dashboard.Request) {
	if req == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.Run(context.WithoutCancel(r.Context()), req)
	}()

	timer := time.NewTimer(api.settle)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		api.logger.Debug("dispatch still running, answering early",
			zap.String("action", req.ActionID))
	}
}

type fieldJSON struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
}

type actionJSON struct {
	ID            string      `json:"id"`
	Label         string      `json:"label"`
	Icon          string      `json:"icon,omitempty"`
	Description   string      `json:"description,omitempty"`
	RequiresInput bool        `json:"requiresInput"`
	Mutating      bool        `json:"mutating"`
	Fields        []fieldJSON `json:"fields,omitempty"`
}

func (api *Server) handleListActions(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl, ok := api.container.Controller(role)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		var out []actionJSON
		for _, d := range ctrl.Registry().Actions() {
			a := actionJSON{
				ID:            d.ID,
				Label:         d.Label,
				Icon:          d.Icon,
				Description:   d.Description,
				RequiresInput: d.RequiresInput,
				Mutating:      d.Mutating,
			}
			for _, f := range d.Fields {
				a.Fields = append(a.Fields, fieldJSON{
					Name:        f.Name,
					Kind:        string(f.Kind),
					Placeholder: f.Placeholder,
					Options:     f.Options,
					Required:    f.Required,
				})
			}
			out = append(out, a)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (api *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	api.pages.render(w, api.logger, http.StatusNotFound, "notfound.html", nil)
}

// controllerError answers a request the controller refused. Unknown actions
// are reported as a missing page, never by name.
func (api *Server) controllerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, action.ErrUnknownAction):
		api.handleNotFound(w, r)
	case errors.Is(err, dashboard.ErrBusy):
		http.Error(w, "a request is already in progress", http.StatusConflict)
	case errors.Is(err, dashboard.ErrNoSession):
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// resetDashboards drops state left behind by the previous identity.
func (api *Server) resetDashboards() {
	for _, ctrl := range api.container.Controllers {
		ctrl.Cancel()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
