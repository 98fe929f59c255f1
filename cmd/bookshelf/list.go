package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books in the catalog",
	Long:  "Display the catalog in a formatted table, or as JSON records with --json",
	Run: func(cmd *cobra.Command, args []string) {
		loanedOnly, _ := cmd.Flags().GetBool("loaned")
		query, _ := cmd.Flags().GetString("search")
		asJSON, _ := cmd.Flags().GetBool("json")

		c := openCatalog()
		books := c.Search(query)
		if loanedOnly {
			books = onlyLoaned(books)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			cobra.CheckErr(enc.Encode(data.ToRecords(books)))
			return
		}

		if len(books) == 0 {
			if c.Len() == 0 {
				fmt.Println("📚 No books in the catalog. Use 'bookshelf add' to add one.")
			} else {
				fmt.Println("📚 No books match.")
			}
			return
		}

		columns := []table.Column{
			{Title: "Title", Width: 32},
			{Title: "Author", Width: 22},
			{Title: "Year", Width: 6},
			{Title: "Kind", Width: 9},
			{Title: "Details", Width: 20},
			{Title: "Status", Width: 10},
		}

		rows := []table.Row{}
		for _, book := range books {
			rows = append(rows, table.Row{
				truncateString(book.Title, 30),
				truncateString(book.Author, 20),
				fmt.Sprintf("%d", book.YearPublished),
				string(book.Kind()),
				detailsColumn(book),
				string(book.Status),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Library (%d of %d books)\n\n", len(books), c.Len())
		fmt.Println(t.View())
	},
}

func onlyLoaned(books []data.Book) []data.Book {
	var out []data.Book
	for _, b := range books {
		if b.Status == data.StatusLoaned {
			out = append(out, b)
		}
	}
	return out
}

func init() {
	listCmd.Flags().Bool("loaned", false, "only show books that are on loan")
	listCmd.Flags().StringP("search", "s", "", "only show books whose description contains this text")
	listCmd.Flags().Bool("json", false, "print JSON records instead of a table")
}
