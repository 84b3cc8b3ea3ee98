// internal/tui/app.go
//
// Interactive browser for a project's module export manifests. It uses
// bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/rollup/internal/config"
	"github.com/kingrea/rollup/internal/logging"
	"github.com/kingrea/rollup/internal/module"
	"github.com/kingrea/rollup/manifest"
)

// appState represents which "screen" we're on
type appState int

const (
	stateModules   appState = iota // Module list with a detail pane
	stateAggregate                 // Full rollup across every module
)

// RegistryFactory builds the module registry the browser displays. Tests
// inject their own.
type RegistryFactory func(cfg *config.Config) (*module.Registry, error)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithRegistryFactory overrides how the browser loads its module registry.
func WithRegistryFactory(factory RegistryFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.registryFactory = factory
		}
	}
}

// moduleItem implements list.Item for the module menu.
type moduleItem struct {
	id    string
	title string
	desc  string
}

func (i moduleItem) Title() string       { return i.title }
func (i moduleItem) Description() string { return i.desc }
func (i moduleItem) FilterValue() string { return i.id }

// App is the main application model.
type App struct {
	state           appState
	config          *config.Config
	registry        *module.Registry
	registryFactory RegistryFactory
	logger          *logging.Logger

	moduleMenu list.Model
	width      int
	height     int
}

// NewApp creates a new App instance for the given project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}

	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⬡ MODULES"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	app := &App{
		state:           stateModules,
		config:          cfg,
		registryFactory: defaultRegistryFactory,
		moduleMenu:      menu,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	reg, err := app.registryFactory(cfg)
	if err != nil {
		return nil, err
	}
	app.registry = reg
	if logger, err := logging.New(cfg.ProjectDir); err == nil {
		app.logger = logger
		logger.Printf("browser opened: %d modules, %d rolled-up names", len(reg.IDs()), len(reg.ExportList()))
	}
	app.moduleMenu.SetItems(buildModuleItems(reg))
	return app, nil
}

func defaultRegistryFactory(cfg *config.Config) (*module.Registry, error) {
	reg := module.NewRegistry()
	if err := manifest.RegisterModules(reg, cfg); err != nil {
		return nil, err
	}
	return reg, nil
}

func buildModuleItems(reg *module.Registry) []list.Item {
	mods := reg.Modules()
	items := make([]list.Item, len(mods))
	for i, mod := range mods {
		info := mod.Info()
		contrib := len(mod.Exports().Effective())
		items[i] = moduleItem{
			id:    info.ID,
			title: info.Label(),
			desc:  fmt.Sprintf("v%s · %d exported names", info.Version, contrib),
		}
	}
	return items
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.moduleMenu.SetSize(max(0, msg.Width/2-4), max(0, msg.Height-8))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateModules {
				a.closeLogger()
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateModules {
				a.state = stateModules
				return a, nil
			}
		case "a":
			if a.state == stateModules {
				a.state = stateAggregate
				return a, nil
			}
		}
	}

	if a.state == stateModules {
		var menuCmd tea.Cmd
		a.moduleMenu, menuCmd = a.moduleMenu.Update(msg)
		return a, menuCmd
	}
	return a, nil
}

func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	leftWidth := width/2 - 2
	rightWidth := width - leftWidth - 4
	if rightWidth < 24 {
		leftWidth = width
		rightWidth = 0
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ ROLLUP")

	var body string
	switch a.state {
	case stateAggregate:
		body = a.renderAggregate(width - 4)
	default:
		left := boxStyle().Width(max(20, leftWidth)).Render(a.moduleMenu.View())
		right := ""
		if rightWidth > 0 {
			right = boxStyle().Width(rightWidth).Render(a.renderSelectedModule())
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render("a: aggregate · esc: back · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) renderSelectedModule() string {
	item, ok := a.moduleMenu.SelectedItem().(moduleItem)
	if !ok {
		return "No modules declared.\n\nAdd YAML or Go manifests under .rollup/modules."
	}
	mod, ok := a.registry.Lookup(item.id)
	if !ok {
		return fmt.Sprintf("module %s missing from registry", item.id)
	}
	info := mod.Info()
	exports := mod.Exports()

	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(info.Label())
	sections := []string{head}
	if info.Description != "" {
		sections = append(sections, info.Description)
	}
	sections = append(sections,
		renderNameList("public", exports.Public),
		renderNameList("allow", exports.Allow),
		renderNameList("block", exports.Block),
		renderNameList("effective", exports.Effective()),
	)
	return strings.Join(sections, "\n\n")
}

func (a *App) renderAggregate(width int) string {
	names := a.registry.ExportList()
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("AGGREGATE · %d names", len(names)))
	body := "Nothing to export."
	if len(names) > 0 {
		body = strings.Join(names, "\n")
	}
	styled := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(body)
	return boxStyle().Width(max(20, width)).Render(head + "\n" + styled)
}

func renderNameList(label string, names []string) string {
	title := lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(label))
	if names == nil {
		return title + "\n(unset)"
	}
	if len(names) == 0 {
		return title + "\n(empty)"
	}
	return title + "\n" + strings.Join(names, ", ")
}

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1)
}

func (a *App) closeLogger() {
	if a.logger != nil {
		a.logger.Printf("browser closed")
		_ = a.logger.Close()
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
