package commands

import (
	"steward/internal/precheck"

	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that required local applications are installed",
	Long:  `Check that the local applications steward depends on are installed, reporting every missing one at once together with an install command for the local distribution.`,
	Run: func(cmd *cobra.Command, _ []string) {
		result := precheck.Check()

		if result.OK {
			cmd.Printf("✅ %s\n", result.Diagnostic())
			return
		}

		cmd.PrintErrf("❌ %s", result.Diagnostic())
	},
}
