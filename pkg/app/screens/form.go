package screens

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/bookshelf/pkg/app/components"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/integrations"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/kerbaras/bookshelf/pkg/sources"
)

type formField int

const (
	fieldTitle formField = iota
	fieldAuthor
	fieldYear
	fieldCover
	fieldPages
	fieldWeight
	fieldSize
	fieldFormat
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:  "Title",
	fieldAuthor: "Author",
	fieldYear:   "Year Published",
	fieldCover:  "Cover Image",
	fieldPages:  "Page Count",
	fieldWeight: "Weight (gram)",
	fieldSize:   "File Size (MB)",
	fieldFormat: "File Format",
}

// formValues is the raw text of the form, before parsing.
type formValues struct {
	Kind   data.Kind
	Title  string
	Author string
	Year   string
	Cover  string
	Pages  string
	Weight string
	Size   string
	Format string
}

// buildBook parses and validates v. The returned book is a fresh Available
// book with a new ID; editing callers carry the original's over.
func buildBook(v formValues) (data.Book, error) {
	title := strings.TrimSpace(v.Title)
	author := strings.TrimSpace(v.Author)

	year, err := strconv.Atoi(strings.TrimSpace(v.Year))
	if err != nil {
		return data.Book{}, errors.New("Year Published must be a whole number")
	}

	var book data.Book
	switch v.Kind {
	case data.KindDigital:
		size, err := strconv.ParseFloat(strings.TrimSpace(v.Size), 64)
		if err != nil {
			return data.Book{}, errors.New("File Size must be a number")
		}
		format, err := data.ParseFormat(v.Format)
		if err != nil {
			return data.Book{}, errors.New("File Format must be one of PDF, EPUB or MOBI")
		}
		book = data.NewDigital(title, author, year, size, format)
	default:
		pages, err := strconv.Atoi(strings.TrimSpace(v.Pages))
		if err != nil {
			return data.Book{}, errors.New("Page Count must be a whole number")
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(v.Weight), 64)
		if err != nil {
			return data.Book{}, errors.New("Weight must be a number")
		}
		book = data.NewPhysical(title, author, year, pages, weight)
	}
	book.CoverImage = strings.TrimSpace(v.Cover)

	if err := data.ValidateBook(book); err != nil {
		return data.Book{}, err
	}
	return book, nil
}

// FormScreen adds a new book, or edits an existing one when original is set.
type FormScreen struct {
	catalog  *services.Catalog
	covers   integrations.CoverImporter
	original *data.Book

	kind   data.Kind
	inputs [fieldCount]textinput.Model
	// focus 0 is the kind selector; 1..n index visibleFields.
	focus  int
	notice components.Notice
	width  int
	height int
}

func NewFormScreen(catalog *services.Catalog, covers integrations.CoverImporter, original *data.Book) *FormScreen {
	s := &FormScreen{
		catalog:  catalog,
		covers:   covers,
		original: original,
		kind:     data.KindPhysical,
	}

	for i := range s.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = 40
		s.inputs[i] = ti
	}
	s.inputs[fieldYear].Placeholder = fmt.Sprintf("%d-%d", data.MinYear, data.MaxYear)
	s.inputs[fieldCover].Placeholder = "optional path to a JPEG or PNG"
	s.inputs[fieldFormat].Placeholder = "PDF, EPUB or MOBI"
	s.inputs[fieldFormat].ShowSuggestions = true
	s.inputs[fieldFormat].SetSuggestions([]string{"PDF", "EPUB", "MOBI"})

	if original != nil {
		s.prefill(*original)
	}

	s.focus = 1
	s.applyFocus()
	return s
}

func (s *FormScreen) prefill(b data.Book) {
	s.kind = b.Kind()
	s.inputs[fieldTitle].SetValue(b.Title)
	s.inputs[fieldAuthor].SetValue(b.Author)
	s.inputs[fieldYear].SetValue(strconv.Itoa(b.YearPublished))
	s.inputs[fieldCover].SetValue(b.CoverImage)
	if p, ok := b.Physical(); ok {
		s.inputs[fieldPages].SetValue(strconv.Itoa(p.PageCount))
		s.inputs[fieldWeight].SetValue(strconv.FormatFloat(p.WeightGrams, 'f', -1, 64))
	}
	if d, ok := b.Digital(); ok {
		s.inputs[fieldSize].SetValue(strconv.FormatFloat(d.FileSizeMB, 'f', -1, 64))
		s.inputs[fieldFormat].SetValue(string(d.Format))
	}
}

// prefillMatch fills a new physical book's fields from a lookup result.
// Unknown values are left blank.
func (s *FormScreen) prefillMatch(m sources.Match) {
	s.kind = data.KindPhysical
	s.inputs[fieldTitle].SetValue(m.Title)
	s.inputs[fieldAuthor].SetValue(m.Author)
	if m.YearPublished > 0 {
		s.inputs[fieldYear].SetValue(strconv.Itoa(m.YearPublished))
	}
	if m.PageCount > 0 {
		s.inputs[fieldPages].SetValue(strconv.Itoa(m.PageCount))
	}
}

func (s *FormScreen) editing() bool {
	return s.original != nil
}

func (s *FormScreen) visibleFields() []formField {
	fields := []formField{fieldTitle, fieldAuthor, fieldYear, fieldCover}
	if s.kind == data.KindDigital {
		return append(fields, fieldSize, fieldFormat)
	}
	return append(fields, fieldPages, fieldWeight)
}

func (s *FormScreen) values() formValues {
	return formValues{
		Kind:   s.kind,
		Title:  s.inputs[fieldTitle].Value(),
		Author: s.inputs[fieldAuthor].Value(),
		Year:   s.inputs[fieldYear].Value(),
		Cover:  s.inputs[fieldCover].Value(),
		Pages:  s.inputs[fieldPages].Value(),
		Weight: s.inputs[fieldWeight].Value(),
		Size:   s.inputs[fieldSize].Value(),
		Format: s.inputs[fieldFormat].Value(),
	}
}

func (s *FormScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *FormScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, switchTo("library", nil)
		case "tab", "down":
			s.move(1)
			return s, nil
		case "shift+tab", "up":
			s.move(-1)
			return s, nil
		case "ctrl+t":
			s.toggleKind()
			return s, nil
		case "ctrl+s":
			return s, s.submit()
		case "enter":
			if s.focus == len(s.visibleFields()) {
				return s, s.submit()
			}
			s.move(1)
			return s, nil
		}

		if s.focus == 0 {
			switch msg.String() {
			case "left", "right", " ", "h", "l":
				s.toggleKind()
			}
			return s, nil
		}
	}

	if s.focus == 0 {
		return s, nil
	}
	field := s.visibleFields()[s.focus-1]
	var cmd tea.Cmd
	s.inputs[field], cmd = s.inputs[field].Update(msg)
	return s, cmd
}

func (s *FormScreen) move(delta int) {
	n := len(s.visibleFields()) + 1
	s.focus = (s.focus + delta + n) % n
	if s.editing() && s.focus == 0 {
		s.focus = (s.focus + delta + n) % n
	}
	s.applyFocus()
}

func (s *FormScreen) applyFocus() {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	if s.focus > 0 {
		s.inputs[s.visibleFields()[s.focus-1]].Focus()
	}
}

func (s *FormScreen) toggleKind() {
	if s.editing() {
		s.notice.Set(components.NoticeInfo, "The kind of an existing book cannot be changed.")
		return
	}
	if s.kind == data.KindDigital {
		s.kind = data.KindPhysical
	} else {
		s.kind = data.KindDigital
	}
	if s.focus > len(s.visibleFields()) {
		s.focus = len(s.visibleFields())
	}
	s.applyFocus()
}

func (s *FormScreen) submit() tea.Cmd {
	book, err := buildBook(s.values())
	if err != nil {
		s.notice.Set(components.NoticeError, err.Error())
		return nil
	}

	if book.CoverImage != "" && s.covers != nil && (s.original == nil || book.CoverImage != s.original.CoverImage) {
		stored, err := s.covers.Import(book.CoverImage)
		if err != nil {
			s.notice.Set(components.NoticeError, fmt.Sprintf("Cover image: %s", err))
			return nil
		}
		book.CoverImage = stored
	}

	if s.original == nil {
		if err := s.catalog.Add(book); err != nil {
			s.notice.Set(components.NoticeError, fmt.Sprintf("Could not add '%s': %s", book.Title, err))
			return nil
		}
		return switchTo("library", fmt.Sprintf("Book '%s' has been added.", book.Title))
	}

	book.ID = s.original.ID
	book.Status = s.original.Status
	found, err := s.catalog.EditID(s.original.ID, book)
	switch {
	case err != nil:
		s.notice.Set(components.NoticeError, fmt.Sprintf("Could not update '%s': %s", s.original.Title, err))
		return nil
	case !found:
		s.notice.Set(components.NoticeError, fmt.Sprintf("Book '%s' not found.", s.original.Title))
		return nil
	}
	return switchTo("library", fmt.Sprintf("Book '%s' has been updated.", book.Title))
}

func switchTo(screen string, payload interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: payload}
	}
}

func (s *FormScreen) View() string {
	header := styles.TitleStyle.Render("➕ Add Book")
	if s.editing() {
		header = styles.TitleStyle.Render(fmt.Sprintf("✏️  Edit '%s'", s.original.Title))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(s.notice.View())

	kindLine := s.renderKind()
	b.WriteString(kindLine)
	b.WriteString("\n\n")

	for i, field := range s.visibleFields() {
		style := styles.InputStyle
		if s.focus == i+1 {
			style = styles.FocusedInputStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
			styles.LabelStyle.Render(fieldLabels[field]),
			style.Render(s.inputs[field].View()),
		))
		b.WriteString("\n")
	}

	help := "tab/↓: next • shift+tab/↑: previous • ctrl+t: physical/digital • ctrl+s: save • esc: cancel"
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(help))
	return b.String()
}

func (s *FormScreen) renderKind() string {
	label := styles.LabelStyle.Render("Kind")
	options := []struct {
		kind data.Kind
		name string
	}{
		{data.KindPhysical, "Physical"},
		{data.KindDigital, "Digital"},
	}

	parts := make([]string, len(options))
	for i, opt := range options {
		k, name := opt.kind, opt.name
		if k == s.kind {
			parts[i] = styles.SelectedStyle.Render("● " + name)
		} else {
			parts[i] = styles.MutedStyle.Render("○ " + name)
		}
	}

	line := label + strings.Join(parts, "  ")
	if s.focus == 0 {
		line += styles.MutedStyle.Render("  ←/→ to change")
	}
	return line
}
