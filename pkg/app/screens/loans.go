package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/bookshelf/pkg/app/components"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/services"
)

// LoansScreen lists the books currently on loan and returns them.
type LoansScreen struct {
	catalog  *services.Catalog
	bookList *components.BookList
	notice   components.Notice
	width    int
	height   int
}

func NewLoansScreen(catalog *services.Catalog) *LoansScreen {
	list := components.NewBookList()
	list.EmptyMessage = "No books are on loan"

	s := &LoansScreen{
		catalog:  catalog,
		bookList: list,
	}
	s.Refresh()
	return s
}

func (s *LoansScreen) Init() tea.Cmd {
	return nil
}

func (s *LoansScreen) Refresh() {
	s.bookList.SetItems(s.catalog.Loaned())
}

func (s *LoansScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.bookList.Width = msg.Width - 4
		s.bookList.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.bookList.Prev()
		case "down", "j":
			s.bookList.Next()
		case "r":
			s.notice.Clear()
			s.Refresh()
		case "enter", "u":
			s.returnSelected()
		}
	}

	return s, nil
}

func (s *LoansScreen) returnSelected() {
	selected := s.bookList.Selected()
	if selected == nil {
		return
	}

	title := selected.Title
	outcome, err := s.catalog.ReturnID(selected.ID)
	switch {
	case err != nil:
		s.notice.Set(components.NoticeError, fmt.Sprintf("%s %s", outcome.Message(title), err))
	case outcome.OK():
		s.notice.Set(components.NoticeSuccess, outcome.Message(title))
	default:
		s.notice.Set(components.NoticeError, outcome.Message(title))
	}
	s.Refresh()
}

func (s *LoansScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📤 On Loan")
	count := styles.SubtitleStyle.Render(fmt.Sprintf("%d books out", len(s.bookList.Items)))

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: return book • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s", header, count, s.notice.View(), s.bookList.View(), help)
}
