package cmd

import (
	"fmt"
	"os"

	logger "github.com/riverfold/privydash/internal/logging"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "privydash",
		Short: "Publish an encrypted dashboard to static hosting",
		Long: `Privydash encrypts a locally generated dashboard report and publishes it
to Firebase Hosting. The encryption key and the list of authorized viewer
emails are stored in Firestore; the published page decrypts itself in the
browser after the viewer signs in with an authorized Google account.

The hosting template is only ever mutated for the duration of one publish
run and is restored to its placeholder form afterwards, so no ciphertext
or secret material lingers in the working tree.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing privydash with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			banner := figure.NewColorFigure("privydash", "alligator2", "green", true)
			banner.Print()
			fmt.Println()
			fmt.Println("Run 'privydash --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(publishCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(doctorCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetPublishCommandState()
	statusJSONOutput = false
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
