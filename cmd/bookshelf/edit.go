package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [title]",
	Short: "Change a book's details",
	Long: `Edit the first book whose title matches. Only the given flags change; the
book keeps its place in the catalog and its loan status.`,
	Example: `  bookshelf edit "Dune" --year 1966
  bookshelf edit "dune" --title "Dune Messiah" --pages 256`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)

		c := openCatalog()
		existing, ok := c.Find(title)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Book '%s' not found.\n", title)
			return
		}

		book, err := applyBookFlags(cmd, existing)
		cobra.CheckErr(err)
		if cmd.Flags().Changed("title") {
			newTitle, _ := cmd.Flags().GetString("title")
			book.Title = strings.TrimSpace(newTitle)
		}
		cobra.CheckErr(data.ValidateBook(book))
		cobra.CheckErr(importCover(&book, existing.CoverImage))

		if _, err := c.EditID(existing.ID, book); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to update book: %w", err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Book '%s' has been updated.\n", book.Title)
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	addBookFlags(editCmd)
}
