// Package cmd testing utilities shared between CLI tests. Provides helpers
// for building a throwaway working tree, capturing output, and running the
// real commands against it.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/riverfold/privydash/internal/hosting"
	logger "github.com/riverfold/privydash/internal/logging"
)

// setupWorkingTree creates a publishable working tree in a temp directory
// and chdirs into it: a pristine hosting template under firebase_public/
// and a small report artifact at the default path. The original working
// directory is restored on cleanup.
func setupWorkingTree(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	workDir := t.TempDir()
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})

	publicDir := filepath.Join(workDir, "firebase_public")
	if err := os.MkdirAll(publicDir, 0755); err != nil {
		t.Fatalf("Failed to create hosting dir: %v", err)
	}
	site := hosting.NewSite(publicDir, "index.html", logger.Logger{})
	if err := site.Restore(); err != nil {
		t.Fatalf("Failed to seed template: %v", err)
	}

	outputDir := filepath.Join(workDir, "output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("Failed to create output dir: %v", err)
	}
	report := "<html><body><h1>Test dashboard</h1></body></html>"
	if err := os.WriteFile(filepath.Join(outputDir, "dashboard.html"), []byte(report), 0644); err != nil {
		t.Fatalf("Failed to write report artifact: %v", err)
	}

	return workDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy captured stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to copy captured stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCommand executes the real root command with the given args and
// returns everything it printed.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	Logger = logger.Logger{}

	root := GetRootCmd()
	root.SetArgs(args)

	return captureOutput(func() error {
		return root.Execute()
	})
}
