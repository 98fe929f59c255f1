package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/spf13/cobra"
)

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func titleArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// detailsColumn is the kind-specific summary shown in tables.
func detailsColumn(b data.Book) string {
	if d, ok := b.Digital(); ok {
		return fmt.Sprintf("%s, %sMB", d.Format, strconv.FormatFloat(d.FileSizeMB, 'f', -1, 64))
	}
	if p, ok := b.Physical(); ok {
		return fmt.Sprintf("%d pages, %sg", p.PageCount, strconv.FormatFloat(p.WeightGrams, 'f', -1, 64))
	}
	return ""
}

// addBookFlags registers the book attribute flags shared by add and edit.
func addBookFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("author", "a", "", "author")
	f.IntP("year", "y", 0, fmt.Sprintf("year published (%d-%d)", data.MinYear, data.MaxYear))
	f.Int("pages", 0, "page count of a physical book")
	f.Float64("weight", 0, "weight in grams of a physical book")
	f.Float64("size", 0, "file size in MB of a digital book")
	f.String("format", "", "file format of a digital book: PDF, EPUB or MOBI")
	f.String("cover", "", "path to a cover image")
}

// applyBookFlags overrides the fields of base with every flag the user set.
// Flags that belong to the other kind of book are rejected.
func applyBookFlags(cmd *cobra.Command, base data.Book) (data.Book, error) {
	f := cmd.Flags()
	book := base

	if f.Changed("author") {
		book.Author, _ = f.GetString("author")
	}
	if f.Changed("year") {
		book.YearPublished, _ = f.GetInt("year")
	}
	if f.Changed("cover") {
		book.CoverImage, _ = f.GetString("cover")
	}

	switch v := base.Variant.(type) {
	case data.Digital:
		if f.Changed("pages") || f.Changed("weight") {
			return data.Book{}, fmt.Errorf("--pages and --weight only apply to physical books")
		}
		if f.Changed("size") {
			v.FileSizeMB, _ = f.GetFloat64("size")
		}
		if f.Changed("format") {
			s, _ := f.GetString("format")
			format, err := data.ParseFormat(s)
			if err != nil {
				return data.Book{}, err
			}
			v.Format = format
		}
		book.Variant = v
	case data.Physical:
		if f.Changed("size") || f.Changed("format") {
			return data.Book{}, fmt.Errorf("--size and --format only apply to digital books")
		}
		if f.Changed("pages") {
			v.PageCount, _ = f.GetInt("pages")
		}
		if f.Changed("weight") {
			v.WeightGrams, _ = f.GetFloat64("weight")
		}
		book.Variant = v
	}

	return book, nil
}

// importCover copies a newly given cover into the covers directory.
func importCover(book *data.Book, previous string) error {
	if book.CoverImage == "" || book.CoverImage == previous {
		return nil
	}
	stored, err := coverStore().Import(book.CoverImage)
	if err != nil {
		return fmt.Errorf("failed to import cover: %w", err)
	}
	book.CoverImage = stored
	return nil
}

func printOutcome(w io.Writer, title string, outcome services.Outcome, err error) {
	if outcome.OK() {
		fmt.Fprintf(w, "✅ %s\n", outcome.Message(title))
	} else {
		fmt.Fprintf(w, "❌ %s\n", outcome.Message(title))
	}
	cobra.CheckErr(err)
}
