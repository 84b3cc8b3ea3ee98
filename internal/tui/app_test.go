package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/rollup/internal/config"
	"github.com/kingrea/rollup/internal/module"
	"github.com/kingrea/rollup/rollup"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	projectDir := t.TempDir()
	if err := config.InitRollupDir(projectDir); err != nil {
		t.Fatalf("init rollup dir: %v", err)
	}
	app, err := NewApp(projectDir, WithRegistryFactory(func(cfg *config.Config) (*module.Registry, error) {
		reg := module.NewRegistry()
		reg.MustRegister(module.Static{
			Meta: module.Info{ID: "parser", Name: "Parser", Version: "1.0.0"},
			Declared: rollup.Exports{
				Public: []string{"Parse", "Tokenize"},
				Block:  []string{"Tokenize"},
			},
		})
		reg.MustRegister(module.Static{
			Meta:     module.Info{ID: "renderer", Version: "1.0.0"},
			Declared: rollup.Exports{Public: []string{"Render"}},
		})
		return reg, nil
	}))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func TestViewListsModules(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)
	view := app.View()
	if !strings.Contains(view, "Parser") {
		t.Fatalf("expected module list to show Parser, got:\n%s", view)
	}
	if !strings.Contains(view, "EFFECTIVE") {
		t.Fatalf("expected detail pane headings, got:\n%s", view)
	}
}

func TestAggregateViewShowsRollup(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	app = model.(*App)
	if app.state != stateAggregate {
		t.Fatalf("expected aggregate state, got %d", app.state)
	}
	view := app.View()
	for _, name := range []string{"Parse", "Render"} {
		if !strings.Contains(view, name) {
			t.Fatalf("aggregate view missing %s:\n%s", name, view)
		}
	}
	if strings.Contains(view, "Tokenize") {
		t.Fatalf("blocked name leaked into aggregate view:\n%s", view)
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	if app.state != stateModules {
		t.Fatalf("esc must return to module list")
	}
}

func TestQuitFromModuleList(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit, got %v", msg)
	}
}
