package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kerbaras/bookshelf/pkg/utils"
)

const userAgent = "bookshelf/1.0 (+https://github.com/kerbaras/bookshelf)"

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	MedianPages      int      `json:"number_of_pages_median"`
}

func (d searchDoc) toMatch() Match {
	m := Match{
		Title:         d.Title,
		YearPublished: d.FirstPublishYear,
		PageCount:     d.MedianPages,
		Key:           d.Key,
	}
	if len(d.AuthorNames) > 0 {
		m.Author = strings.Join(d.AuthorNames, ", ")
	}
	return m
}

type OpenLibrary struct {
	api *utils.API
}

func NewOpenLibrary(baseURL string) *OpenLibrary {
	return &OpenLibrary{api: utils.NewAPI(strings.TrimRight(baseURL, "/"), userAgent, 1)}
}

// Search looks up books by title on Open Library's search.json endpoint.
func (o *OpenLibrary) Search(ctx context.Context, title string, limit int) ([]Match, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("title", title)
	params.Set("fields", "key,title,author_name,first_publish_year,number_of_pages_median")
	params.Set("limit", strconv.Itoa(limit))

	var res struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	}
	if err := o.api.Get(ctx, "/search.json", params, &res); err != nil {
		return nil, fmt.Errorf("open library search failed: %w", err)
	}

	out := make([]Match, len(res.Docs))
	for i, d := range res.Docs {
		out[i] = d.toMatch()
	}
	return out, nil
}

var _ Source = (*OpenLibrary)(nil)
