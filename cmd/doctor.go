package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/riverfold/privydash/internal/ui"
	"github.com/riverfold/privydash/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run preflight checks for the publish pipeline",
	Long: `Runs the preflight checks a publish run depends on and reports issues.

The doctor command checks:
  - Key store credentials (FIREBASE_SERVICE_ACCOUNT)
  - Authorized recipients (RECIPIENT_EMAIL)
  - Hosting template presence and placeholder integrity
  - Report artifact presence
  - The firebase CLI on PATH
  - Project identifier resolution

Exit codes:
  0 - All checks passed
  1 - One or more checks failed

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting doctor command")

		deps, closeDeps, err := buildDeps(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to run preflight checks: %v", err)
		}
		defer closeDeps()

		checks := workflows.Doctor(cmd.Context(), deps)

		failed := 0
		for _, c := range checks {
			if !c.OK {
				failed++
			}
		}

		if doctorJSONOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(checks); err != nil {
				return err
			}
		} else {
			for _, c := range checks {
				mark := ui.Success.Sprint("✓")
				if !c.OK {
					mark = ui.Error.Sprint("✗")
				}
				fmt.Printf("%s %-22s %s\n", mark, c.Name, ui.Muted.Sprint(c.Detail))
			}
			if failed == 0 {
				fmt.Println(ui.Success.Sprint("✓") + " All checks passed, ready to publish")
			} else {
				fmt.Printf("%s %d %s failed\n", ui.Error.Sprint("✗"), failed, pluralize("check", failed))
			}
		}

		if failed > 0 {
			doctorExitFunc(1)
		}
		return nil
	},
}
