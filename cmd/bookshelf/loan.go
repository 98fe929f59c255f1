package cmd

import (
	"github.com/spf13/cobra"
)

var loanCmd = &cobra.Command{
	Use:   "loan [title]",
	Short: "Loan out an available book",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)
		outcome, err := openCatalog().Loan(title)
		printOutcome(cmd.OutOrStdout(), title, outcome, err)
	},
}

var returnCmd = &cobra.Command{
	Use:   "return [title]",
	Short: "Take back a loaned book",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := titleArg(args)
		outcome, err := openCatalog().Return(title)
		printOutcome(cmd.OutOrStdout(), title, outcome, err)
	},
}
