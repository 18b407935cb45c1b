package ui

import (
	"context"
	"fmt"
	"strings"

	"hoteldesk/internal/action"
	"hoteldesk/internal/dashboard"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/render"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type actionItem struct {
	desc action.Descriptor
}

func (i actionItem) Title() string       { return strings.TrimSpace(i.desc.Icon + " " + i.desc.Label) }
func (i actionItem) Description() string { return i.desc.Description }
func (i actionItem) FilterValue() string { return i.desc.Label }

type mode int

const (
	modeMenu mode = iota
	modeForm
)

type outcomeMsg dashboard.Outcome

type Model struct {
	ctrl    *dashboard.Controller
	session domain.Session

	mode    mode
	menu    list.Model
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	notice  string

	width  int
	height int
}

func NewModel(ctrl *dashboard.Controller, sess domain.Session) Model {
	var items []list.Item
	for _, d := range ctrl.Registry().Actions() {
		items = append(items, actionItem{desc: d})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Actions"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctrl:    ctrl,
		session: sess,
		menu:    l,
		spinner: s,
	}
}

// RunDashboard blocks until the user quits.
func RunDashboard(ctrl *dashboard.Controller, sess domain.Session) error {
	_, err := tea.NewProgram(NewModel(ctrl, sess), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width/3, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case outcomeMsg:
		m.ctrl.Complete(dashboard.Outcome(msg))
		snap := m.ctrl.Snapshot()
		if snap.Selected != nil && snap.Selected.RequiresInput && snap.State == dashboard.ShowingError {
			m.mode = modeForm
		} else {
			m.mode = modeMenu
			m.inputs = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Cancel()
			return m, tea.Quit
		}
		if m.ctrl.Snapshot().State == dashboard.Submitting {
			if msg.String() == "esc" {
				m.ctrl.Cancel()
				m.mode = modeMenu
				m.inputs = nil
			}
			return m, nil
		}
		if m.mode == modeForm {
			return m.updateForm(msg)
		}
		return m.updateMenu(msg)
	}

	if m.mode == modeMenu {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.ctrl.Cancel()
		return m, nil
	case "enter":
		item, ok := m.menu.SelectedItem().(actionItem)
		if !ok {
			return m, nil
		}
		req, err := m.ctrl.Select(item.desc.ID)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
		if req != nil {
			return m, m.execute(req)
		}
		m.openForm()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) openForm() {
	snap := m.ctrl.Snapshot()
	if snap.Selected == nil {
		return
	}
	m.mode = modeForm
	m.focus = 0
	m.inputs = make([]textinput.Model, len(snap.Selected.Fields))
	for i, f := range snap.Selected.Fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-14s ", f.Name)
		ti.Placeholder = f.Placeholder
		if len(f.Options) > 0 {
			ti.Placeholder = strings.Join(f.Options, " | ")
			ti.ShowSuggestions = true
			ti.SetSuggestions(f.Options)
		}
		ti.SetValue(snap.Values[f.Name])
		ti.Width = 40
		m.inputs[i] = ti
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		m.mode = modeMenu
		m.inputs = nil
		return m, nil
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.moveFocus(1)
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	if snap.Selected == nil {
		return m, nil
	}
	for i, f := range snap.Selected.Fields {
		if err := m.ctrl.SetField(f.Name, m.inputs[i].Value()); err != nil {
			m.notice = err.Error()
			return m, nil
		}
	}
	req, err := m.ctrl.Submit()
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	return m, m.execute(req)
}

func (m Model) execute(req *dashboard.Request) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return outcomeMsg(ctrl.Execute(context.Background(), req))
	}
}

func (m Model) View() string {
	snap := m.ctrl.Snapshot()

	title := titleStyle.Render(fmt.Sprintf("%s DASHBOARD", m.ctrl.Registry().Role()))
	who := descStyle.Render(fmt.Sprintf("Welcome, %s", m.session.DisplayName))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", who)

	var body []string
	if m.mode == modeForm && snap.Selected != nil {
		body = append(body, keyStyle.Render(strings.TrimSpace(snap.Selected.Icon+" "+snap.Selected.Label)))
		for _, in := range m.inputs {
			body = append(body, in.View())
		}
	}

	switch snap.State {
	case dashboard.Submitting:
		body = append(body, m.spinner.View()+" Processing...")
	case dashboard.ShowingError:
		body = append(body, RenderError(snap.Error))
	case dashboard.ShowingResult:
		body = append(body, RenderView(render.Build(snap.Result)))
	}
	if m.notice != "" {
		body = append(body, errorStyle.Render(m.notice))
	}

	right := baseStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
	if len(body) == 0 {
		right = descStyle.Render("Select an action")
	}

	help := "↑/↓: navigate • enter: run • esc: cancel • q: quit"
	if m.mode == modeForm {
		help = "tab: next field • enter: next/submit • ctrl+s: submit • esc: cancel"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, m.menu.View(), "  ", right),
		footerStyle.Render(help),
	)
}
