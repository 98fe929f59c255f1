package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/data"
)

type BookList struct {
	Items         []data.Book
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewBookList() *BookList {
	return &BookList{
		Items:         []data.Book{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		EmptyMessage:  "No books in the catalog",
	}
}

func (m *BookList) SetItems(items []data.Book) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *BookList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *BookList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *BookList) Selected() *data.Book {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// visibleRange keeps the selected card on screen, assuming each card takes
// about cardHeight lines.
func (m *BookList) visibleRange() (int, int) {
	const cardHeight = 10
	perPage := m.Height / cardHeight
	if perPage < 1 {
		perPage = 1
	}
	if len(m.Items) <= perPage {
		return 0, len(m.Items)
	}

	start := m.SelectedIndex - perPage/2
	if start < 0 {
		start = 0
	}
	end := start + perPage
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - perPage
	}
	return start, end
}

func (m *BookList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyMessage)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		book := m.Items[i]

		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(book.Title)
		byline := styles.SubtitleStyle.Render(fmt.Sprintf("%s, %d", book.Author, book.YearPublished))
		status := styles.StatusStyle(string(book.Status)).Render(fmt.Sprintf("Status: %s", book.Status))
		details := styles.MutedStyle.Render(variantLine(book))

		lines := []string{title, byline, "", details, status}
		if book.CoverImage != "" {
			lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("Cover: %s", book.CoverImage)))
		}

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		b.WriteString(card)
		b.WriteString("\n")
	}

	if end-start < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d books", start+1, end, len(m.Items)),
		))
	}

	return b.String()
}

func variantLine(book data.Book) string {
	if d, ok := book.Digital(); ok {
		return fmt.Sprintf("Digital • %s • %gMB", d.Format, d.FileSizeMB)
	}
	if p, ok := book.Physical(); ok {
		return fmt.Sprintf("Physical • %d pages • %g gram", p.PageCount, p.WeightGrams)
	}
	return ""
}
