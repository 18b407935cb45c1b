package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"hoteldesk/internal/action"
	"hoteldesk/internal/dashboard"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/render"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var titles = map[domain.Role]string{
	domain.RoleCustomer: "Customer Dashboard",
	domain.RoleManager:  "Manager Dashboard",
	domain.RoleAdmin:    "Admin Dashboard",
}

type pages struct {
	tpl *template.Template
}

func mustParsePages() *pages {
	funcs := template.FuncMap{
		"value": func(v action.Values, name string) string { return v[name] },
		"bar": func(u *render.Units) string {
			if u == nil {
				return ""
			}
			return u.Bar("★", "☆")
		},
		"tagClass": func(c render.Color) string {
			if c == render.NoColor {
				return ""
			}
			return "tag tag-" + string(c)
		},
	}
	return &pages{tpl: template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))}
}

type loginPage struct {
	Email string
	Error string
}

type dashboardPage struct {
	Title    string
	Base     string
	Session  domain.Session
	Actions  []action.Descriptor
	Selected *action.Descriptor
	Values   action.Values
	Busy     bool
	ShowForm bool
	Error    string
	View     render.View
	NoData   bool
}

func newDashboardPage(sess domain.Session, reg *action.Registry, base string, snap dashboard.Snapshot) dashboardPage {
	p := dashboardPage{
		Title:    titles[sess.Role],
		Base:     base,
		Session:  sess,
		Actions:  reg.Actions(),
		Selected: snap.Selected,
		Values:   snap.Values,
		Busy:     snap.State == dashboard.Submitting,
		ShowForm: snap.Selected != nil && snap.Selected.RequiresInput,
		Error:    snap.Error,
	}
	if snap.HasResult {
		p.View = render.Build(snap.Result)
		p.NoData = p.View.Empty()
	}
	return p
}

// render executes into a buffer first so a template failure never leaves a
// half written page behind.
func (p *pages) render(w http.ResponseWriter, logger *zap.Logger, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
