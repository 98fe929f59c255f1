package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/bookshelf/pkg/app/components"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/services"
)

type LibraryScreen struct {
	catalog  *services.Catalog
	bookList *components.BookList
	summary  *components.LoanSummary
	search   textinput.Model
	notice   components.Notice
	width    int
	height   int
}

func NewLibraryScreen(catalog *services.Catalog) *LibraryScreen {
	search := textinput.New()
	search.Placeholder = "Search title, author, year, format..."
	search.Prompt = "/ "
	search.CharLimit = 100

	s := &LibraryScreen{
		catalog:  catalog,
		bookList: components.NewBookList(),
		summary:  components.NewLoanSummary(80),
		search:   search,
	}
	s.Refresh()
	return s
}

func (s *LibraryScreen) Init() tea.Cmd {
	return nil
}

// Searching reports whether the search box has focus.
func (s *LibraryScreen) Searching() bool {
	return s.search.Focused()
}

// Refresh reloads the visible books from the catalog, applying the current
// search query.
func (s *LibraryScreen) Refresh() {
	s.bookList.SetItems(s.catalog.Search(s.search.Value()))
	s.summary.Update(s.catalog.Books())
	if s.search.Value() != "" {
		s.bookList.EmptyMessage = fmt.Sprintf("No books match %q", s.search.Value())
	} else {
		s.bookList.EmptyMessage = "No books in the catalog. Press 'a' to add one."
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.bookList.Width = msg.Width - 4
		s.bookList.Height = msg.Height - 14
		s.summary.SetWidth(msg.Width - 4)
		s.search.Width = msg.Width - 10

	case tea.KeyMsg:
		if s.search.Focused() {
			return s.updateSearch(msg)
		}

		switch msg.String() {
		case "up", "k":
			s.bookList.Prev()
		case "down", "j":
			s.bookList.Next()
		case "/":
			s.notice.Clear()
			return s, s.search.Focus()
		case "r":
			s.notice.Clear()
			s.Refresh()
		case "l":
			s.loanSelected()
		case "e", "enter":
			if selected := s.bookList.Selected(); selected != nil {
				id := selected.ID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "edit", Data: id}
				}
			}
		}
	}

	return s, nil
}

func (s *LibraryScreen) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.search.Blur()
		return s, nil
	case "esc":
		s.search.SetValue("")
		s.search.Blur()
		s.Refresh()
		return s, nil
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.Refresh()
	return s, cmd
}

func (s *LibraryScreen) loanSelected() {
	selected := s.bookList.Selected()
	if selected == nil {
		return
	}

	outcome, err := s.catalog.LoanID(selected.ID)
	if err != nil {
		s.notice.Set(components.NoticeError, fmt.Sprintf("%s %s", outcome.Message(selected.Title), err))
	} else if outcome.OK() {
		s.notice.Set(components.NoticeSuccess, outcome.Message(selected.Title))
	} else {
		s.notice.Set(components.NoticeError, outcome.Message(selected.Title))
	}
	s.Refresh()
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📚 Library")
	summary := s.summary.View()

	var search string
	if s.search.Focused() || s.search.Value() != "" {
		search = s.search.View() + "\n\n"
	}

	listView := s.bookList.View()

	help := "↑/k: up • ↓/j: down • /: search • l: loan • e: edit • a: add • r: refresh • tab: switch view • q: quit"
	if s.search.Focused() {
		help = "enter: apply search • esc: clear search"
	}

	return fmt.Sprintf("%s\n%s\n\n%s%s%s\n%s",
		header, summary, s.notice.View(), search, listView, styles.HelpStyle.Render(help))
}
