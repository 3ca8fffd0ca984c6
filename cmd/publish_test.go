package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riverfold/privydash/internal/hosting"
	logger "github.com/riverfold/privydash/internal/logging"
)

func clearPipelineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_SERVICE_ACCOUNT", "")
	t.Setenv("FIREBASE_TOKEN", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("RECIPIENT_EMAIL", "")
	t.Setenv("NO_COLOR", "1")
}

func TestPublishDryRunCommand(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv("RECIPIENT_EMAIL", "viewer@example.com")
	setupWorkingTree(t)

	output, err := runCommand(t, "publish", "--dry-run")
	if err != nil {
		t.Fatalf("publish --dry-run failed: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "Dry run complete") {
		t.Errorf("Expected dry run confirmation, got: %s", output)
	}
	if !strings.Contains(output, "to 1 recipient") {
		t.Errorf("Expected recipient count in output, got: %s", output)
	}
}

func TestPublishWithoutCredentials(t *testing.T) {
	clearPipelineEnv(t)
	setupWorkingTree(t)

	output, err := runCommand(t, "publish")
	if err == nil {
		t.Fatal("publish should fail without key store credentials")
	}
	if !strings.Contains(output, "FIREBASE_SERVICE_ACCOUNT") {
		t.Errorf("Expected a hint about credentials, got: %s", output)
	}
}

func TestPublishMissingTemplate(t *testing.T) {
	clearPipelineEnv(t)
	workDir := setupWorkingTree(t)

	if err := os.RemoveAll(filepath.Join(workDir, "firebase_public")); err != nil {
		t.Fatalf("Failed to remove hosting dir: %v", err)
	}

	output, err := runCommand(t, "publish", "--dry-run")
	if err == nil {
		t.Fatal("publish should fail without the hosting template")
	}
	if !strings.Contains(output, "template") && !strings.Contains(output, "Template") {
		t.Errorf("Expected a template error, got: %s", output)
	}
}

func TestRestoreCommandRecoversTree(t *testing.T) {
	clearPipelineEnv(t)
	workDir := setupWorkingTree(t)

	publicDir := filepath.Join(workDir, "firebase_public")
	site := hosting.NewSite(publicDir, "index.html", logger.Logger{})
	if err := site.Inject("Crashed", "deadbeef"); err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(publicDir, ".privydash.lock"), []byte("999\n"), 0600); err != nil {
		t.Fatalf("Failed to plant lock: %v", err)
	}

	output, err := runCommand(t, "restore")
	if err != nil {
		t.Fatalf("restore failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "stale publish lock removed") {
		t.Errorf("Expected lock removal message, got: %s", output)
	}

	content, err := os.ReadFile(site.TemplatePath())
	if err != nil {
		t.Fatalf("Failed to read template: %v", err)
	}
	if string(content) != hosting.CanonicalTemplate() {
		t.Error("Template not restored to canonical form")
	}
}

func TestStatusCommandJSON(t *testing.T) {
	clearPipelineEnv(t)
	t.Setenv("RECIPIENT_EMAIL", "a@example.com,b@example.com")
	setupWorkingTree(t)

	output, err := runCommand(t, "status", "--json")
	if err != nil {
		t.Fatalf("status --json failed: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, `"template": "pristine"`) {
		t.Errorf("Expected pristine template in JSON, got: %s", output)
	}
	if !strings.Contains(output, `"recipients": 2`) {
		t.Errorf("Expected recipient count in JSON, got: %s", output)
	}
	if !strings.Contains(output, `"has_credentials": false`) {
		t.Errorf("Expected credentials flag in JSON, got: %s", output)
	}
}

func TestDoctorCommandReportsFailures(t *testing.T) {
	clearPipelineEnv(t)
	setupWorkingTree(t)

	ResetGlobalState()
	Logger = logger.Logger{}

	var exitCode int
	SetDoctorExitFunc(func(code int) {
		exitCode = code
	})

	root := GetRootCmd()
	root.SetArgs([]string{"doctor"})

	output, err := captureOutput(func() error {
		return root.Execute()
	})
	if err != nil {
		t.Fatalf("doctor failed: %v\noutput: %s", err, output)
	}

	// Credentials and recipients are absent, so the run must flag failures.
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(output, "key store credentials") {
		t.Errorf("Expected credentials check in output, got: %s", output)
	}
	if !strings.Contains(output, "hosting template") {
		t.Errorf("Expected template check in output, got: %s", output)
	}
}
