package cmd

import (
	"github.com/riverfold/privydash/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the hosting template to its placeholder form",
	Long: `Rewrites the hosting template to its canonical placeholder-bearing form and
removes any stale publish lock. Use this to recover after a crashed publish
run that may have left ciphertext in the working tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting restore command")
		spinner, cleanup := startSpinner("Restoring hosting template...", verbose)
		defer cleanup()

		deps, closeDeps, err := buildDeps(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to prepare restore: %v", err)
		}
		defer closeDeps()

		result, err := workflows.Restore(cmd.Context(), deps)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to restore the template\n" +
				color.RedString("Error: ") + err.Error()
			return err
		}

		switch {
		case result.WasPristine && !result.LockBroken:
			spinner.FinalMSG = color.GreenString("✓") + " Template was already in its placeholder form"
		case result.LockBroken:
			spinner.FinalMSG = color.GreenString("✓") + " Template restored and stale publish lock removed"
		default:
			spinner.FinalMSG = color.GreenString("✓") + " Template restored to its placeholder form"
		}
		return nil
	},
}
