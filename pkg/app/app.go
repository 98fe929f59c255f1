package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/bookshelf/pkg/app/screens"
	"github.com/kerbaras/bookshelf/pkg/integrations"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/kerbaras/bookshelf/pkg/sources"
)

type App struct {
	catalog *services.Catalog
	covers  integrations.CoverImporter
	source  sources.Source
	notice  string
}

// NewApp wires the TUI to catalog. notice, if set, is shown on startup.
func NewApp(catalog *services.Catalog, covers integrations.CoverImporter, source sources.Source, notice string) *App {
	return &App{catalog: catalog, covers: covers, source: source, notice: notice}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.catalog, a.covers, a.source, a.notice)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
