package cmd

import (
	"fmt"

	"github.com/kerbaras/bookshelf/pkg/integrations"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as an EPUB",
	Long:  "Write an EPUB with one section per book, including its cover when one is stored",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")
		loanedOnly, _ := cmd.Flags().GetBool("loaned")

		c := openCatalog()
		books := c.Books()
		if loanedOnly {
			books = onlyLoaned(books)
		}

		var exporter integrations.Exporter = integrations.NewEPubBuilder(dir)
		path, err := exporter.CreateEPub(title, books)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		fmt.Printf("📖 Exported %d books to %s\n", len(books), path)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", ".", "directory to write the EPUB to")
	exportCmd.Flags().String("title", "Library Catalog", "title of the EPUB")
	exportCmd.Flags().Bool("loaned", false, "only export books that are on loan")
}
