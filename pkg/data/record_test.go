package data

import (
	"testing"

	"github.com/google/uuid"
)

func TestToRecordPhysical(t *testing.T) {
	book := NewPhysical("Dune", "Frank Herbert", 1965, 412, 800)
	book.ID = uuid.New()

	r := ToRecord(book)

	if r.FileSizeMB != nil || r.FileFormat != nil {
		t.Error("Expected digital columns to be null for a physical book")
	}
	if r.PageCount == nil || *r.PageCount != 412 {
		t.Errorf("Expected page count 412, got %v", r.PageCount)
	}
	if r.WeightGrams == nil || *r.WeightGrams != 800 {
		t.Errorf("Expected weight 800, got %v", r.WeightGrams)
	}
	if r.CoverImagePath != nil {
		t.Error("Expected null cover path")
	}
	if r.ID != book.ID.String() {
		t.Errorf("Expected ID %s, got %s", book.ID, r.ID)
	}
	if r.Status != "Available" {
		t.Errorf("Expected status Available, got %s", r.Status)
	}
}

func TestToRecordDigital(t *testing.T) {
	book := NewDigital("Go in Action", "William Kennedy", 2015, 2.5, FormatEPUB)
	book.CoverImage = "/covers/go.jpg"

	r := ToRecord(book)

	if r.PageCount != nil || r.WeightGrams != nil {
		t.Error("Expected physical columns to be null for a digital book")
	}
	if r.FileSizeMB == nil || *r.FileSizeMB != 2.5 {
		t.Errorf("Expected size 2.5, got %v", r.FileSizeMB)
	}
	if r.FileFormat == nil || *r.FileFormat != "EPUB" {
		t.Errorf("Expected format EPUB, got %v", r.FileFormat)
	}
	if r.CoverImagePath == nil || *r.CoverImagePath != "/covers/go.jpg" {
		t.Errorf("Expected cover path, got %v", r.CoverImagePath)
	}
}

func TestFromRecordPicksVariantByFileSize(t *testing.T) {
	size := 1.5
	format := "pdf"
	pages := 100

	digital, err := FromRecord(Record{Title: "A", Author: "B", YearPublished: 2000, FileSizeMB: &size, FileFormat: &format})
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if digital.Kind() != KindDigital {
		t.Errorf("Expected digital book, got %s", digital.Kind())
	}
	if d, _ := digital.Digital(); d.Format != FormatPDF {
		t.Errorf("Expected format PDF, got %s", d.Format)
	}

	physical, err := FromRecord(Record{Title: "A", Author: "B", YearPublished: 2000, PageCount: &pages})
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if physical.Kind() != KindPhysical {
		t.Errorf("Expected physical book, got %s", physical.Kind())
	}
}

func TestFromRecordAssignsMissingID(t *testing.T) {
	book, err := FromRecord(Record{Title: "A", Author: "B", YearPublished: 2000, Status: "dipinjam"})
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if book.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if book.Status != StatusLoaned {
		t.Errorf("Expected legacy status to map to Loaned, got %s", book.Status)
	}
}

func TestFromRecordRejectsBadValues(t *testing.T) {
	badFormat := "docx"
	size := 1.0

	tests := []Record{
		{Title: "A", Status: "lost"},
		{Title: "A", ID: "not-a-uuid"},
		{Title: "A", FileSizeMB: &size, FileFormat: &badFormat},
	}

	for _, r := range tests {
		if _, err := FromRecord(r); err == nil {
			t.Errorf("Expected error for record %+v", r)
		}
	}
}

func TestRecordsRoundTripKeepsOrderAndValues(t *testing.T) {
	books := []Book{
		NewPhysical("Dune", "Frank Herbert", 1965, 412, 800),
		NewDigital("Go in Action", "William Kennedy", 2015, 2.5, FormatEPUB),
		NewPhysical("Emma", "Jane Austen", 1815, 474, 350.5),
	}
	for i := range books {
		books[i].ID = uuid.New()
	}
	books[1].Status = StatusLoaned

	got, err := FromRecords(ToRecords(books))
	if err != nil {
		t.Fatalf("FromRecords failed: %v", err)
	}

	if len(got) != len(books) {
		t.Fatalf("Expected %d books, got %d", len(books), len(got))
	}
	for i := range books {
		if got[i].Describe() != books[i].Describe() {
			t.Errorf("Book %d mismatch:\n%s\nwant\n%s", i, got[i].Describe(), books[i].Describe())
		}
		if got[i].ID != books[i].ID {
			t.Errorf("Book %d ID mismatch", i)
		}
	}
}
