package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenHome screen = iota
	screenAirfoils
	screenRuns
	screenResult
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type airfoilItem struct {
	name string
	path string
}

func (a airfoilItem) Title() string       { return a.name }
func (a airfoilItem) Description() string { return filepath.Base(a.path) }
func (a airfoilItem) FilterValue() string { return a.name }

type runItem struct {
	id      string
	airfoil string
	alpha   float64
	started time.Time
}

func (r runItem) Title() string { return r.id }
func (r runItem) Description() string {
	return fmt.Sprintf("%s  alpha=%.3f  %s", r.airfoil, r.alpha, r.started.Format(time.RFC3339))
}
func (r runItem) FilterValue() string { return r.id + " " + r.airfoil }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	menu     list.Model
	airfoils list.Model
	runs     list.Model

	workspaceFound bool
	workspaceRoot  string

	running bool
	toast   string
	result  string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{"Airfoils", "Format coordinate files and optimize their polars"},
		menuItem{"Runs", "Browse saved optimization runs"},
		menuItem{"Init Workspace", "Create foilopt.yaml, input/, output/ and runs/ here"},
		menuItem{"Quit", "Exit foilopt"},
	}

	menu := newList(items, "foilopt")
	airfoils := newList(nil, "Airfoils")
	runs := newList(nil, "Runs")

	m := model{
		theme:    t,
		deps:     deps,
		scr:      screenHome,
		menu:     menu,
		airfoils: airfoils,
		runs:     runs,
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width-4, msg.Height-10
		m.menu.SetSize(w, h)
		m.airfoils.SetSize(w, h)
		m.runs.SetSize(w, h)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case airfoilsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, airfoilItem{name: r.Name, path: r.Path})
		}
		return m, m.airfoils.SetItems(items)

	case runsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, runItem{id: r.ID, airfoil: r.Airfoil, alpha: r.Alpha, started: r.StartedAt})
		}
		return m, m.runs.SetItems(items)

	case formatDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = ""
		m.result = renderFormatResult(msg.res)
		m.scr = screenResult
		return m, cmdLoadAirfoils(m.workspaceRoot)

	case optimizeDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = ""
		m.result = renderOptimizationCard(msg.run, msg.id)
		m.scr = screenResult
		return m, nil

	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			return m.home(), nil

		case "esc", "b":
			if m.scr != screenHome {
				return m.home(), nil
			}

		case "enter":
			switch m.scr {
			case screenHome:
				return m.openMenuItem()
			case screenAirfoils:
				return m.startFormat()
			case screenResult:
				return m.home(), nil
			}

		case "o":
			if m.scr == screenAirfoils {
				return m.startOptimize()
			}
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenAirfoils:
		m.airfoils, cmd = m.airfoils.Update(msg)
	case screenRuns:
		m.runs, cmd = m.runs.Update(msg)
	}
	return m, cmd
}

func (m model) home() model {
	m.scr = screenHome
	m.result = ""
	return m
}

func (m model) filtering() bool {
	switch m.scr {
	case screenHome:
		return m.menu.FilterState() == list.Filtering
	case screenAirfoils:
		return m.airfoils.FilterState() == list.Filtering
	case screenRuns:
		return m.runs.FilterState() == list.Filtering
	}
	return false
}

func (m model) openMenuItem() (tea.Model, tea.Cmd) {
	it, ok := m.menu.SelectedItem().(menuItem)
	if !ok {
		return m, nil
	}

	switch it.title {
	case "Quit":
		return m, tea.Quit

	case "Init Workspace":
		wd, err := os.Getwd()
		if err != nil {
			m.toast = userMessage(err)
			return m, nil
		}
		return m, cmdInitWorkspaceHere(m.deps, wd)

	case "Airfoils":
		if !m.workspaceFound {
			m.toast = "No workspace found (run Init Workspace first)"
			return m, nil
		}
		m.scr = screenAirfoils
		m.toast = ""
		return m, cmdLoadAirfoils(m.workspaceRoot)

	case "Runs":
		if !m.workspaceFound {
			m.toast = "No workspace found (run Init Workspace first)"
			return m, nil
		}
		m.scr = screenRuns
		m.toast = ""
		return m, cmdLoadRuns(m.workspaceRoot)
	}
	return m, nil
}

func (m model) startFormat() (tea.Model, tea.Cmd) {
	it, ok := m.airfoils.SelectedItem().(airfoilItem)
	if !ok || m.running {
		return m, nil
	}
	m.running = true
	m.toast = "Formatting " + it.name + "…"
	_, cmd := startFormatAsync(it.path, m.deps.Logger)
	return m, cmd
}

func (m model) startOptimize() (tea.Model, tea.Cmd) {
	it, ok := m.airfoils.SelectedItem().(airfoilItem)
	if !ok || m.running {
		return m, nil
	}
	m.running = true
	m.toast = "Optimizing " + it.name + "…"
	_, cmd := startOptimizeAsync(m.workspaceRoot, it.path, m.deps.Logger, m.deps.Debug)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("foilopt") + "\n" +
		m.theme.Subtitle.Render("airfoil outline normalizer and polar optimizer") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with Init Workspace.",
		)
	}

	if m.deps.Debug && m.deps.LogPath != "" {
		workspaceBanner += "\n" + m.theme.Help.Render("Log: "+m.deps.LogPath)
	}

	var toast string
	if strings.TrimSpace(m.toast) != "" {
		toast = "\n" + m.theme.Toast.Render(clampString(m.toast, 120)) + "\n"
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + toast + "\n" + help)

	case screenAirfoils:
		help := m.theme.Help.Render("enter format • o optimize polar • / search • esc back")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.airfoils.View()) + toast + "\n" + help)

	case screenRuns:
		help := m.theme.Help.Render("↑/↓ navigate • / search • esc back")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.runs.View()) + toast + "\n" + help)

	case screenResult:
		card := m.theme.Card.Render(m.result + "\n" + m.theme.Help.Render("enter/esc back • q home"))
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
