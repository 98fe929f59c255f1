package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/bookshelf/pkg/sources"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [title]",
	Short: "Look up book metadata on Open Library",
	Long:  "Search Open Library by title to find the author, first publication year and page count before adding a book",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var source sources.Source = sources.NewOpenLibrary(cfg.OpenLibraryURL)
		logger.Debug("looking up title", "title", title, "url", cfg.OpenLibraryURL)

		results, err := source.Search(ctx, title, limit)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("lookup failed: %w", err))
		}

		if len(results) == 0 {
			fmt.Println("No results found.")
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Title", "Author", "Year", "Pages")

		for i, m := range results {
			t.Row(
				fmt.Sprintf("%d", i+1),
				truncateString(m.Title, 48),
				truncateString(m.Author, 28),
				orDash(m.YearPublished),
				orDash(m.PageCount),
			)
		}

		fmt.Println(t)
		fmt.Println(`💡 To add one, pick it in the Look Up tab of bookshelf, or use: bookshelf add "<title>" --author ... --year ...`)
	},
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}

func init() {
	lookupCmd.Flags().IntP("limit", "n", 5, "maximum number of results")
}
