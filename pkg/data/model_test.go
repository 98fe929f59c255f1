package data

import (
	"testing"
)

func TestDescribePhysical(t *testing.T) {
	book := NewPhysical("Dune", "Frank Herbert", 1965, 412, 800)

	want := "Title: Dune\nAuthor: Frank Herbert\nYear Published: 1965\nStatus: Available\nPage Count: 412\nWeight: 800 gram"
	if got := book.Describe(); got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
}

func TestDescribeDigital(t *testing.T) {
	book := NewDigital("Go in Action", "William Kennedy", 2015, 2.5, FormatEPUB)
	book.Status = StatusLoaned

	want := "Title: Go in Action\nAuthor: William Kennedy\nYear Published: 2015\nStatus: Loaned\nFile Size: 2.5MB\nFormat: EPUB"
	if got := book.Describe(); got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
}

func TestBookKind(t *testing.T) {
	physical := NewPhysical("A", "B", 2000, 10, 10)
	digital := NewDigital("A", "B", 2000, 1, FormatPDF)

	if physical.Kind() != KindPhysical {
		t.Errorf("Expected physical kind, got %s", physical.Kind())
	}
	if digital.Kind() != KindDigital {
		t.Errorf("Expected digital kind, got %s", digital.Kind())
	}
	if (Book{}).Kind() != "" {
		t.Error("Expected empty kind for a book without variant")
	}

	if _, ok := physical.Digital(); ok {
		t.Error("Physical book should not expose digital attributes")
	}
	if p, ok := physical.Physical(); !ok || p.PageCount != 10 {
		t.Errorf("Expected physical attributes, got %+v (%v)", p, ok)
	}
	if d, ok := digital.Digital(); !ok || d.Format != FormatPDF {
		t.Errorf("Expected digital attributes, got %+v (%v)", d, ok)
	}
}

func TestMatchesTitle(t *testing.T) {
	book := NewPhysical("Dune", "Frank Herbert", 1965, 412, 800)

	tests := []struct {
		title string
		want  bool
	}{
		{"Dune", true},
		{"dune", true},
		{"DUNE", true},
		{"Dun", false},
		{"Dune Messiah", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := book.MatchesTitle(tt.title); got != tt.want {
			t.Errorf("MatchesTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Available", StatusAvailable, false},
		{"loaned", StatusLoaned, false},
		{"", StatusAvailable, false},
		{"tersedia", StatusAvailable, false},
		{"Dipinjam", StatusLoaned, false},
		{"lost", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"pdf", " EPUB ", "Mobi"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestBookIsValueType(t *testing.T) {
	original := NewPhysical("Dune", "Frank Herbert", 1965, 412, 800)
	copied := original

	copied.Title = "Changed"
	copied.Status = StatusLoaned

	if original.Title != "Dune" || original.Status != StatusAvailable {
		t.Errorf("Modifying a copy changed the original: %+v", original)
	}
}
