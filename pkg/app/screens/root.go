package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/kerbaras/bookshelf/pkg/app/components"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/integrations"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/kerbaras/bookshelf/pkg/sources"
)

type screenType int

const (
	libraryView screenType = iota
	loansView
	lookupView
	formView
)

// tabbedViews are the views tab cycles through.
const tabbedViews = 3

// SwitchScreenMsg asks the root screen to change view. Data depends on the
// target: a notice string for "library", a book ID for "edit", an optional
// sources.Match for "add".
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// Catalog calls happen only inside Update, on the bubbletea event loop, so
// the catalog is never touched from two goroutines.
type RootScreen struct {
	catalog *services.Catalog
	covers  integrations.CoverImporter

	currentView screenType
	library     *LibraryScreen
	loans       *LoansScreen
	lookup      *LookupScreen
	form        *FormScreen

	width  int
	height int
}

// NewRootScreen builds the TUI. startupNotice is shown on the library
// screen, e.g. to report a missing catalog file.
// source may be nil, which leaves the lookup tab unusable.
func NewRootScreen(catalog *services.Catalog, covers integrations.CoverImporter, source sources.Source, startupNotice string) *RootScreen {
	library := NewLibraryScreen(catalog)
	if startupNotice != "" {
		library.notice.Set(components.NoticeError, startupNotice)
	}

	return &RootScreen{
		catalog:     catalog,
		covers:      covers,
		currentView: libraryView,
		library:     library,
		loans:       NewLoansScreen(catalog),
		lookup:      NewLookupScreen(source),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.library.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.library.Update(msg)
		r.loans.Update(msg)
		r.lookup.Update(msg)
		if r.form != nil {
			r.form.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if !r.capturing() {
			switch msg.String() {
			case "q":
				return r, tea.Quit
			case "tab":
				return r, r.switchTo((r.currentView + 1) % tabbedViews)
			case "a":
				r.openForm(nil)
				return r, r.form.Init()
			}
		}

	case lookupResultMsg:
		// results arrive even if the user has moved to another tab
		r.lookup.Update(msg)
		return r, nil

	case SwitchScreenMsg:
		switch msg.Screen {
		case "library":
			cmd = r.switchTo(libraryView)
			if text, ok := msg.Data.(string); ok && text != "" {
				r.library.notice.Set(components.NoticeSuccess, text)
			}
		case "loans":
			cmd = r.switchTo(loansView)
		case "lookup":
			cmd = r.switchTo(lookupView)
		case "add":
			r.openForm(nil)
			if m, ok := msg.Data.(sources.Match); ok {
				r.form.prefillMatch(m)
			}
			cmd = r.form.Init()
		case "edit":
			if id, ok := msg.Data.(uuid.UUID); ok {
				if book, found := r.catalog.FindID(id); found {
					r.openForm(&book)
					cmd = r.form.Init()
				}
			}
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	case loansView:
		newModel, newCmd := r.loans.Update(msg)
		r.loans = newModel.(*LoansScreen)
		return r, newCmd
	case lookupView:
		newModel, newCmd := r.lookup.Update(msg)
		r.lookup = newModel.(*LookupScreen)
		return r, newCmd
	case formView:
		if r.form != nil {
			newModel, newCmd := r.form.Update(msg)
			r.form = newModel.(*FormScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

// capturing reports whether the active screen is taking text input, in
// which case global shortcuts are disabled.
func (r *RootScreen) capturing() bool {
	switch r.currentView {
	case libraryView:
		return r.library.Searching()
	case lookupView:
		return r.lookup.Searching()
	case formView:
		return true
	}
	return false
}

func (r *RootScreen) switchTo(view screenType) tea.Cmd {
	r.currentView = view
	r.form = nil
	switch view {
	case loansView:
		r.loans.Refresh()
		return r.loans.Init()
	case lookupView:
		return r.lookup.Init()
	default:
		r.library.Refresh()
		return r.library.Init()
	}
}

func (r *RootScreen) openForm(book *data.Book) {
	r.form = NewFormScreen(r.catalog, r.covers, book)
	r.form.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
	r.currentView = formView
}

func (r *RootScreen) View() string {
	tabs := r.renderTabs()

	var content string
	switch r.currentView {
	case libraryView:
		content = r.library.View()
	case loansView:
		content = r.loans.View()
	case lookupView:
		content = r.lookup.View()
	case formView:
		if r.form != nil {
			content = r.form.View()
		}
	}

	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

func (r *RootScreen) renderTabs() string {
	names := []string{"Library", "Loaned", "Look Up", "Add Book"}
	active := int(r.currentView)
	if r.currentView == formView && r.form != nil && r.form.editing() {
		names[formView] = "Edit Book"
	}

	tabs := make([]string, len(names))
	for i, name := range names {
		if i == active {
			tabs[i] = styles.ActiveTabStyle.Render(name)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
