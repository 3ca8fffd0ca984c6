package cmd

import (
	"errors"
	"fmt"

	perrors "github.com/riverfold/privydash/internal/errors"
	"github.com/riverfold/privydash/internal/ui"
	"github.com/riverfold/privydash/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	publishReport     string
	publishTitle      string
	publishDryRun     bool
	publishSkipDeploy bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Encrypt the dashboard report and deploy it to hosting",
	Long: `Encrypts the dashboard report with a fresh key, stores the key and the
authorized viewer list in Firestore, injects the ciphertext into the hosting
template, and deploys. The template is restored to its placeholder form on
every exit path, success or failure.

If the key store write fails, nothing is published.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting publish command")
		spinner, cleanup := startSpinner("Publishing encrypted dashboard...", verbose)
		defer cleanup()

		deps, closeDeps, err := buildDeps(cmd.Context())
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to prepare publish run: %v", err)
		}
		defer closeDeps()

		opts := workflows.PublishOptions{
			ReportPath: publishReport,
			Title:      publishTitle,
			DryRun:     publishDryRun,
			SkipDeploy: publishSkipDeploy,
		}

		result, err := workflows.Publish(cmd.Context(), deps, opts)

		switch {
		case err == nil:
			// Fall through to the success messages below.

		case errors.Is(err, perrors.ErrURLUnparseable):
			Logger.Errorf("Deploy finished but no hosting URL could be determined")
			spinner.FinalMSG = color.RedString("✗") + " Deploy finished, but the hosting URL could not be determined\n" +
				color.CyanString("→") + " Check the Firebase console to confirm the site is live"
			return err

		case errors.Is(err, perrors.ErrPlaceholderMissing):
			spinner.FinalMSG = color.RedString("✗") + " Template is missing its ciphertext placeholder\n" +
				color.CyanString("→") + " Run " + ui.Code.Sprint("privydash restore") + " to rewrite the canonical template"
			return err

		case errors.Is(err, perrors.ErrTemplateMissing):
			spinner.FinalMSG = color.RedString("✗") + " Hosting template not found\n" +
				color.CyanString("→") + " Run " + ui.Code.Sprint("privydash doctor") + " to check the working tree"
			return err

		case errors.Is(err, perrors.ErrConfigurationMissing):
			spinner.FinalMSG = color.RedString("✗") + " Key store is not configured\n" +
				color.CyanString("→") + " Set " + ui.Code.Sprint("FIREBASE_SERVICE_ACCOUNT") + " to a service account JSON string"
			return err

		case errors.Is(err, perrors.ErrKeyStoreWriteFailed):
			spinner.FinalMSG = color.RedString("✗") + " Failed to store the encryption key, nothing was published\n" +
				color.RedString("Error: ") + err.Error()
			return err

		case errors.Is(err, perrors.ErrPublishLocked):
			spinner.FinalMSG = color.RedString("✗") + " Another publish run is in progress\n" +
				color.CyanString("→") + " If it crashed, run " + ui.Code.Sprint("privydash restore") + " to recover"
			return err

		case errors.Is(err, perrors.ErrArtifactNotFound), errors.Is(err, perrors.ErrArtifactEmpty):
			spinner.FinalMSG = color.RedString("✗") + " Dashboard report not found or empty\n" +
				color.CyanString("→") + " Generate the report first, or pass " + ui.Flag.Sprint("--report")
			return err

		case errors.Is(err, perrors.ErrDeployTimeout):
			spinner.FinalMSG = color.RedString("✗") + " Deploy timed out\n" +
				color.CyanString("→") + " The template has been restored; try again"
			return err

		case errors.Is(err, perrors.ErrDeployNotFound):
			spinner.FinalMSG = color.RedString("✗") + " The " + ui.Code.Sprint("firebase") + " CLI was not found\n" +
				color.CyanString("→") + " Install it with " + ui.Code.Sprint("npm install -g firebase-tools")
			return err

		default:
			return Logger.ErrorfAndReturn("Publish failed: %v", err)
		}

		if result.DryRun {
			spinner.FinalMSG = color.GreenString("✓") + " Dry run complete\n" +
				fmt.Sprintf("Would publish %d bytes of ciphertext to %d %s", result.PayloadBytes, result.Recipients, pluralize("recipient", result.Recipients))
			return nil
		}

		if result.SkipDeploy {
			spinner.FinalMSG = color.GreenString("✓") + " Key stored and template verified (deploy skipped)\n" +
				color.CyanString("→") + " The template has been restored to its placeholder form"
			return nil
		}

		Logger.Infof("Publish command completed successfully")
		finalMessage := color.GreenString("✓") + " Dashboard published successfully!\n" +
			color.CyanString("→") + " Live at " + ui.Path.Sprint(result.URL) + "\n" +
			color.CyanString("→") + " Readable by " + fmt.Sprintf("%d", result.Recipients) + " authorized " + pluralize("viewer", result.Recipients)
		spinner.FinalMSG = finalMessage
		return nil
	},
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func resetPublishCommandState() {
	publishReport = ""
	publishTitle = ""
	publishDryRun = false
	publishSkipDeploy = false
}

func init() {
	publishCmd.Flags().StringVar(&publishReport, "report", "", "path to the dashboard report (overrides privydash.toml)")
	publishCmd.Flags().StringVar(&publishTitle, "title", "", "dashboard title (overrides privydash.toml)")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "encrypt in memory and stop before any external write")
	publishCmd.Flags().BoolVar(&publishSkipDeploy, "skip-deploy", false, "store the key and verify the template without deploying")
}
