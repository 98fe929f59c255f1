package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/bookshelf/pkg/data"
)

// EPubBuilder renders a catalog snapshot as an EPUB: one section per book
// with its cover and description.
type EPubBuilder struct {
	outputDir string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// CreateEPub writes title.epub into the output directory and returns its
// path.
func (p *EPubBuilder) CreateEPub(title string, books []data.Book) (string, error) {
	if len(books) == 0 {
		return "", fmt.Errorf("no books to export")
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("bookshelf")
	e.SetDescription(fmt.Sprintf("Catalog of %d books", len(books)))
	e.SetLang("en")

	for i, book := range books {
		if err := p.addBook(e, book); err != nil {
			return "", fmt.Errorf("failed to add book %d (%s): %w", i+1, book.Title, err)
		}
	}

	outputPath := filepath.Join(p.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}

	return outputPath, nil
}

func (p *EPubBuilder) addBook(e *epub.Epub, book data.Book) error {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(book.Title)))

	if book.CoverImage != "" && isImageFile(book.CoverImage) {
		if _, err := os.Stat(book.CoverImage); err == nil {
			internalPath, err := e.AddImage(book.CoverImage, "")
			if err != nil {
				return fmt.Errorf("failed to add cover: %w", err)
			}
			body.WriteString(fmt.Sprintf(
				`<div class="cover"><img src="%s" alt="%s" style="max-width:100%%;height:auto;"/></div>%s`,
				internalPath, html.EscapeString(book.Title), "\n",
			))
		}
	}

	body.WriteString("<dl>\n")
	for _, line := range strings.Split(book.Describe(), "\n") {
		label, value, _ := strings.Cut(line, ": ")
		body.WriteString(fmt.Sprintf("<dt>%s</dt><dd>%s</dd>\n",
			html.EscapeString(label), html.EscapeString(value)))
	}
	body.WriteString("</dl>\n")

	_, err := e.AddSection(body.String(), book.Title, "", "")
	return err
}

// isImageFile checks if a file has an image extension
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif" || ext == ".webp"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "catalog"
	}
	return result
}
