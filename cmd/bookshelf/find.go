package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [title]",
	Short: "Show a book's details",
	Long:  "Find the first book whose title matches, ignoring case, and print its description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)

		book, ok := openCatalog().Find(title)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Book '%s' not found.\n", title)
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), book.Describe())
		if book.CoverImage != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Cover: %s\n", book.CoverImage)
		}
	},
}
