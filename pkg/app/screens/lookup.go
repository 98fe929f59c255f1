package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/sources"
)

const (
	lookupLimit   = 8
	lookupTimeout = 30 * time.Second
)

// LookupScreen searches a remote source by title. Picking a result opens
// the add form prefilled with its metadata.
type LookupScreen struct {
	source    sources.Source
	input     textinput.Model
	results   []sources.Match
	selected  int
	searching bool
	searched  string
	err       error
	width     int
	height    int
}

func NewLookupScreen(source sources.Source) *LookupScreen {
	ti := textinput.New()
	ti.Placeholder = "Look up a title on Open Library..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 50

	return &LookupScreen{
		source: source,
		input:  ti,
	}
}

func (s *LookupScreen) Init() tea.Cmd {
	return nil
}

// Searching reports whether the query box has focus.
func (s *LookupScreen) Searching() bool {
	return s.input.Focused()
}

func (s *LookupScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.input.Width = msg.Width - 10

	case lookupResultMsg:
		s.searching = false
		s.results = msg.results
		s.selected = 0
		s.err = msg.err

	case tea.KeyMsg:
		if s.input.Focused() {
			return s.updateInput(msg)
		}
		if s.searching {
			return s, nil
		}

		switch msg.String() {
		case "/":
			s.err = nil
			return s, s.input.Focus()
		case "up", "k":
			if len(s.results) > 0 {
				s.selected--
				if s.selected < 0 {
					s.selected = len(s.results) - 1
				}
			}
		case "down", "j":
			if len(s.results) > 0 {
				s.selected++
				if s.selected >= len(s.results) {
					s.selected = 0
				}
			}
		case "enter":
			if len(s.results) > 0 {
				match := s.results[s.selected]
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "add", Data: match}
				}
			}
		}
	}

	return s, nil
}

func (s *LookupScreen) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(s.input.Value())
		s.input.Blur()
		if query == "" || s.source == nil {
			return s, nil
		}
		s.searching = true
		s.searched = query
		return s, s.performSearch(query)
	case "esc":
		s.input.Blur()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

type lookupResultMsg struct {
	results []sources.Match
	err     error
}

func (s *LookupScreen) performSearch(query string) tea.Cmd {
	source := s.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		results, err := source.Search(ctx, query, lookupLimit)
		return lookupResultMsg{results: results, err: err}
	}
}

func (s *LookupScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("🔍 Look Up")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var body string
	switch {
	case s.source == nil:
		body = styles.MutedStyle.Render("Lookup is not configured")
	case s.searching:
		body = styles.StatusInfo.Render(fmt.Sprintf("Searching for %q...", s.searched))
	case s.err != nil:
		body = styles.StatusError.Render(fmt.Sprintf("Lookup failed: %s", s.err))
	case len(s.results) > 0:
		body = s.renderResults()
	case s.searched != "":
		body = styles.MutedStyle.Render(fmt.Sprintf("No results for %q", s.searched))
	}

	help := "/: search • ↑/k ↓/j: navigate • enter: add selected • tab: switch view • q: quit"
	if s.input.Focused() {
		help = "enter: search • esc: cancel"
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", header, inputView, body, styles.HelpStyle.Render(help))
}

func (s *LookupScreen) renderResults() string {
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Found %d results:", len(s.results))))
	b.WriteString("\n\n")

	for i, m := range s.results {
		cardStyle := styles.CardStyle
		if i == s.selected {
			cardStyle = styles.ActiveCardStyle
		}

		details := []string{orUnknown(m.Author)}
		if m.YearPublished > 0 {
			details = append(details, fmt.Sprintf("%d", m.YearPublished))
		}
		if m.PageCount > 0 {
			details = append(details, fmt.Sprintf("%d pages", m.PageCount))
		}

		card := lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render(m.Title),
			styles.MutedStyle.Render(strings.Join(details, " • ")),
		)
		b.WriteString(cardStyle.Width(s.width - 6).Render(card))
		b.WriteString("\n")
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown author"
	}
	return s
}
