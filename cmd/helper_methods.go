package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/riverfold/privydash/internal/configs"
	"github.com/riverfold/privydash/internal/hosting"
	"github.com/riverfold/privydash/internal/keystore"
	"github.com/riverfold/privydash/internal/ui"
	"github.com/riverfold/privydash/internal/workflows"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function automatically calls ui.EnsureNewline() on the final message before
// printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Discard log output while the spinner owns the line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// buildDeps assembles the workflow collaborators from the working directory
// configuration and the environment. The key store is only constructed when
// credentials are present; workflows that need it fail with a configuration
// error, workflows that can do without (status, doctor, dry runs) proceed.
func buildDeps(ctx context.Context) (workflows.Deps, func(), error) {
	workDir, err := os.Getwd()
	if err != nil {
		return workflows.Deps{}, nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	config, err := configs.LoadProjectConfig(workDir)
	if err != nil {
		return workflows.Deps{}, nil, err
	}
	env := configs.LoadEnv()

	site := hosting.NewSite(config.Hosting.PublicDir, config.Hosting.Template, Logger)

	projectID := env.ProjectID
	if projectID == "" {
		projectID = config.Hosting.ProjectID
	}
	deployer := hosting.NewDeployer(workDir, hosting.DeployOptions{
		ProjectID: projectID,
		Token:     env.DeployToken,
	}, Logger)

	deps := workflows.Deps{
		Config:   config,
		Env:      env,
		Site:     site,
		Deployer: deployer,
		Logger:   Logger,
		WorkDir:  workDir,
		Probe:    hosting.ProbeURL,
	}

	cleanup := func() {}
	if env.ServiceAccountJSON != "" {
		store, err := keystore.NewFirestoreStore(ctx, env, Logger)
		if err != nil {
			return workflows.Deps{}, nil, err
		}
		deps.Store = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				Logger.Debugf("Failed to close key store client: %v", err)
			}
		}
	}

	return deps, cleanup, nil
}
