package sources

import "context"

// Match is a book found in a remote metadata source, used to prefill the
// add form. Zero fields are unknown.
type Match struct {
	Title         string
	Author        string
	YearPublished int
	PageCount     int
	Key           string
}

type Source interface {
	Search(ctx context.Context, title string, limit int) ([]Match, error)
}
