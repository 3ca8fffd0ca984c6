package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/riverfold/privydash/internal/ui"
	"github.com/riverfold/privydash/internal/workflows"

	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

// statusOutput is the machine-readable shape of the status command.
type statusOutput struct {
	Template       string `json:"template"`
	Locked         bool   `json:"locked"`
	Title          string `json:"title"`
	ProjectID      string `json:"project_id,omitempty"`
	Recipients     int    `json:"recipients"`
	HasCredentials bool   `json:"has_credentials"`
	HasDeployToken bool   `json:"has_deploy_token"`
	LastRun        string `json:"last_run,omitempty"`
	LastOutcome    string `json:"last_outcome,omitempty"`
	LastURL        string `json:"last_url,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the working tree and configuration",
	Long: `Shows the hosting template state, whether a publish lock is held, the
configured recipients and project, and the most recent publish recorded in
the audit log.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		deps, closeDeps, err := buildDeps(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to inspect working tree: %v", err)
		}
		defer closeDeps()

		result, err := workflows.Status(cmd.Context(), deps)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to inspect working tree: %v", err)
		}

		out := statusOutput{
			Template:       result.Template.String(),
			Locked:         result.Locked,
			Title:          result.Title,
			ProjectID:      result.ProjectID,
			Recipients:     result.Recipients,
			HasCredentials: result.HasCredentials,
			HasDeployToken: result.HasDeployToken,
		}
		if result.LastRun != nil {
			out.LastRun = result.LastRun.Timestamp
			out.LastOutcome = result.LastRun.Outcome
			out.LastURL = result.LastRun.URL
		}

		if statusJSONOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(out)
		}

		printStatus(out)
		return nil
	},
}

func printStatus(out statusOutput) {
	templateLine := ui.Success.Sprint("✓") + " Template: " + out.Template
	if out.Template != "pristine" {
		templateLine = ui.Warning.Sprint("!") + " Template: " + out.Template
	}
	fmt.Println(templateLine)

	if out.Locked {
		fmt.Println(ui.Warning.Sprint("!") + " Publish lock is held")
		fmt.Println(ui.Info.Sprint("→") + " If no publish is running, use " + ui.Code.Sprint("privydash restore"))
	}

	fmt.Println("  Title:      " + out.Title)
	if out.ProjectID != "" {
		fmt.Println("  Project:    " + ui.Highlight.Sprint(out.ProjectID))
	} else {
		fmt.Println("  Project:    " + ui.Muted.Sprint("not configured"))
	}
	fmt.Printf("  Recipients: %d\n", out.Recipients)

	if out.HasCredentials {
		fmt.Println("  Key store:  " + ui.Success.Sprint("credentials present"))
	} else {
		fmt.Println("  Key store:  " + ui.Error.Sprint("no credentials") + " " + ui.Muted.Sprint("set FIREBASE_SERVICE_ACCOUNT"))
	}

	if out.LastRun != "" {
		fmt.Printf("  Last run:   %s (%s)", out.LastRun, out.LastOutcome)
		if out.LastURL != "" {
			fmt.Print(" " + ui.Path.Sprint(out.LastURL))
		}
		fmt.Println()
	}
}
