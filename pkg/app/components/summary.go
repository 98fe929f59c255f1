package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/bookshelf/pkg/app/styles"
	"github.com/kerbaras/bookshelf/pkg/data"
)

// LoanSummary shows how much of the catalog is out on loan.
type LoanSummary struct {
	Total  int
	Loaned int
	width  int
}

func NewLoanSummary(width int) *LoanSummary {
	return &LoanSummary{width: width}
}

func (s *LoanSummary) Update(books []data.Book) {
	s.Total = len(books)
	s.Loaned = 0
	for _, b := range books {
		if b.Status == data.StatusLoaned {
			s.Loaned++
		}
	}
}

func (s *LoanSummary) SetWidth(width int) {
	s.width = width
}

func (s *LoanSummary) View() string {
	if s.Total == 0 {
		return ""
	}

	text := fmt.Sprintf("%d books • %d on loan • %d available", s.Total, s.Loaned, s.Total-s.Loaned)
	barWidth := s.width - len(text) - 2
	if barWidth > 30 {
		barWidth = 30
	}
	if barWidth < 5 {
		return styles.MutedStyle.Render(text)
	}
	return styles.MutedStyle.Render(text) + "  " + renderProgressBar(s.Loaned, s.Total, barWidth)
}

func renderProgressBar(current, total, width int) string {
	if total == 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}
