package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MOYARU/storyscan/internal/app/output"
	"github.com/MOYARU/storyscan/internal/checks/registry"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the registered content checks in evaluation order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output.PrintChecks(os.Stdout, registry.DefaultChecks())
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
