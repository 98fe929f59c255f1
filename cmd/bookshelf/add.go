package cmd

import (
	"fmt"

	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a book to the catalog",
	Long: `Add a physical book (--pages and --weight) or, with --digital, a digital one
(--size and --format). The book starts out available.`,
	Example: `  bookshelf add "Dune" --author "Frank Herbert" --year 1965 --pages 412 --weight 800
  bookshelf add "Go in Action" -a "Kennedy" -y 2015 --digital --size 2.5 --format epub`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)
		digital, _ := cmd.Flags().GetBool("digital")

		base := data.NewPhysical(title, "", 0, 0, 0)
		if digital {
			base = data.NewDigital(title, "", 0, 0, "")
		}

		book, err := applyBookFlags(cmd, base)
		cobra.CheckErr(err)
		cobra.CheckErr(data.ValidateBook(book))
		cobra.CheckErr(importCover(&book, ""))

		c := openCatalog()
		if err := c.Add(book); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to add book: %w", err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Book '%s' has been added (%s).\n", book.Title, book.Kind())
	},
}

func init() {
	addCmd.Flags().Bool("digital", false, "add a digital book instead of a physical one")
	addBookFlags(addCmd)
	addCmd.MarkFlagRequired("author")
	addCmd.MarkFlagRequired("year")
}
