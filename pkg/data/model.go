package data

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable Status = "Available"
	StatusLoaned    Status = "Loaned"
)

// ParseStatus accepts the canonical names case-insensitively, plus the
// status words written by the original spreadsheet files.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available", "tersedia":
		return StatusAvailable, nil
	case "loaned", "dipinjam":
		return StatusLoaned, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type Format string

const (
	FormatPDF  Format = "PDF"
	FormatEPUB Format = "EPUB"
	FormatMOBI Format = "MOBI"
)

// Formats lists the supported digital formats in display order.
var Formats = []Format{FormatPDF, FormatEPUB, FormatMOBI}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown file format %q", s)
}

// Variant is the kind-specific part of a Book. It is implemented only by
// Physical and Digital.
type Variant interface {
	Kind() Kind
	describe(b *strings.Builder)
}

type Kind string

const (
	KindPhysical Kind = "physical"
	KindDigital  Kind = "digital"
)

type Physical struct {
	PageCount   int     `validate:"gte=1"`
	WeightGrams float64 `validate:"gte=1"`
}

func (Physical) Kind() Kind { return KindPhysical }

func (p Physical) describe(b *strings.Builder) {
	fmt.Fprintf(b, "\nPage Count: %d\nWeight: %s gram", p.PageCount, formatNumber(p.WeightGrams))
}

type Digital struct {
	FileSizeMB float64 `validate:"gt=0"`
	Format     Format  `validate:"oneof=PDF EPUB MOBI"`
}

func (Digital) Kind() Kind { return KindDigital }

func (d Digital) describe(b *strings.Builder) {
	fmt.Fprintf(b, "\nFile Size: %sMB\nFormat: %s", formatNumber(d.FileSizeMB), d.Format)
}

// Book is one catalog record. It is a value type: copies share nothing.
type Book struct {
	ID            uuid.UUID
	Title         string `validate:"required"`
	Author        string `validate:"required"`
	YearPublished int    `validate:"gte=1500,lte=2024"`
	CoverImage    string
	Status        Status
	Variant       Variant
}

func NewPhysical(title, author string, year, pages int, weightGrams float64) Book {
	return Book{
		Title:         title,
		Author:        author,
		YearPublished: year,
		Status:        StatusAvailable,
		Variant:       Physical{PageCount: pages, WeightGrams: weightGrams},
	}
}

func NewDigital(title, author string, year int, sizeMB float64, format Format) Book {
	return Book{
		Title:         title,
		Author:        author,
		YearPublished: year,
		Status:        StatusAvailable,
		Variant:       Digital{FileSizeMB: sizeMB, Format: format},
	}
}

func (b Book) Kind() Kind {
	if b.Variant == nil {
		return ""
	}
	return b.Variant.Kind()
}

// Physical returns the physical attributes, if b is a physical book.
func (b Book) Physical() (Physical, bool) {
	p, ok := b.Variant.(Physical)
	return p, ok
}

// Digital returns the digital attributes, if b is a digital book.
func (b Book) Digital() (Digital, bool) {
	d, ok := b.Variant.(Digital)
	return d, ok
}

// Describe renders the fixed-order summary shown on book cards and by the
// find command.
func (b Book) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\nAuthor: %s\nYear Published: %d\nStatus: %s",
		b.Title, b.Author, b.YearPublished, b.Status)
	if b.Variant != nil {
		b.Variant.describe(&sb)
	}
	return sb.String()
}

// MatchesTitle reports whether title names this book, ignoring case.
func (b Book) MatchesTitle(title string) bool {
	return strings.EqualFold(b.Title, title)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
