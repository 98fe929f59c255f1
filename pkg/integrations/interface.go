package integrations

import "github.com/kerbaras/bookshelf/pkg/data"

// Exporter writes a catalog snapshot somewhere outside the catalog storage.
type Exporter interface {
	CreateEPub(title string, books []data.Book) (string, error)
}

// CoverImporter copies a user-supplied cover image into managed storage.
type CoverImporter interface {
	Import(src string) (string, error)
}

var (
	_ Exporter      = (*EPubBuilder)(nil)
	_ CoverImporter = (*CoverStore)(nil)
)
