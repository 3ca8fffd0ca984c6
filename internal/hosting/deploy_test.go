package hosting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	perrors "github.com/riverfold/privydash/internal/errors"
	logger "github.com/riverfold/privydash/internal/logging"
)

// fakeStrategy records whether it ran and returns canned results.
type fakeStrategy struct {
	strategyName string
	output       []byte
	err          error
	ran          bool
	seenArgs     []string
}

func (f *fakeStrategy) name() string { return f.strategyName }

func (f *fakeStrategy) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	f.ran = true
	f.seenArgs = args
	return f.output, f.err
}

func newTestDeployer(dir string, opts DeployOptions, strategies ...strategy) *Deployer {
	return &Deployer{
		Dir:        dir,
		Options:    opts,
		logger:     logger.Logger{},
		strategies: strategies,
	}
}

func TestDeployFirstStrategySucceeds(t *testing.T) {
	first := &fakeStrategy{strategyName: "direct", output: []byte("Hosting URL: https://proj.web.app\n")}
	second := &fakeStrategy{strategyName: "shell-profile"}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, first, second)

	result, err := d.Deploy(context.Background())
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if result.URL != "https://proj.web.app" {
		t.Errorf("Expected URL, got %q", result.URL)
	}
	if result.Strategy != "direct" {
		t.Errorf("Expected direct strategy, got %q", result.Strategy)
	}
	if second.ran {
		t.Error("Second strategy ran despite first succeeding")
	}
}

func TestDeployFallsBackOnNotFound(t *testing.T) {
	notFound := &exec.Error{Name: hostingCommand, Err: exec.ErrNotFound}
	first := &fakeStrategy{strategyName: "direct", err: notFound}
	second := &fakeStrategy{strategyName: "shell-profile", output: []byte("Hosting URL: https://proj.web.app\n")}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, first, second)

	result, err := d.Deploy(context.Background())
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if !second.ran {
		t.Error("Fallback strategy never ran")
	}
	if result.Strategy != "shell-profile" {
		t.Errorf("Expected shell-profile strategy, got %q", result.Strategy)
	}
}

func TestDeployNonZeroExitDoesNotFallBack(t *testing.T) {
	first := &fakeStrategy{
		strategyName: "direct",
		err:          fmt.Errorf("%w: permission denied", perrors.ErrDeployFailed),
	}
	second := &fakeStrategy{strategyName: "shell-profile"}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, first, second)

	_, err := d.Deploy(context.Background())
	if !errors.Is(err, perrors.ErrDeployFailed) {
		t.Fatalf("Expected ErrDeployFailed, got: %v", err)
	}
	if second.ran {
		t.Error("Fallback ran for a failure that was not a missing binary")
	}
}

func TestDeployAllStrategiesNotFound(t *testing.T) {
	notFound := &exec.Error{Name: hostingCommand, Err: exec.ErrNotFound}
	first := &fakeStrategy{strategyName: "direct", err: notFound}
	second := &fakeStrategy{strategyName: "shell-profile", err: notFound}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, first, second)

	_, err := d.Deploy(context.Background())
	if !errors.Is(err, perrors.ErrDeployNotFound) {
		t.Errorf("Expected ErrDeployNotFound, got: %v", err)
	}
}

func TestDeployOptionsAppendFlags(t *testing.T) {
	first := &fakeStrategy{strategyName: "direct", output: []byte("Hosting URL: https://proj.web.app\n")}
	d := newTestDeployer(t.TempDir(), DeployOptions{ProjectID: "proj", Token: "tok"}, first)

	if _, err := d.Deploy(context.Background()); err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	joined := strings.Join(first.seenArgs, " ")
	if !strings.Contains(joined, "--project proj") {
		t.Errorf("Expected --project flag in args: %v", first.seenArgs)
	}
	if !strings.Contains(joined, "--token tok") {
		t.Errorf("Expected --token flag in args: %v", first.seenArgs)
	}
	if !strings.HasPrefix(joined, "deploy --only hosting") {
		t.Errorf("Expected base deploy command, got: %v", first.seenArgs)
	}
}

func TestDeployURLFallsBackToProjectFile(t *testing.T) {
	dir := t.TempDir()
	rc := `{"projects":{"default":"proj"}}`
	if err := os.WriteFile(filepath.Join(dir, firebasercName), []byte(rc), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", firebasercName, err)
	}

	first := &fakeStrategy{strategyName: "direct", output: []byte("✔  Deploy complete!\n")}
	d := newTestDeployer(dir, DeployOptions{}, first)

	result, err := d.Deploy(context.Background())
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if result.URL != "https://proj.web.app" {
		t.Errorf("Expected synthesized URL, got %q", result.URL)
	}
}

func TestDeployURLUnparseable(t *testing.T) {
	first := &fakeStrategy{strategyName: "direct", output: []byte("✔  Deploy complete!\n")}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, first)

	result, err := d.Deploy(context.Background())
	if !errors.Is(err, perrors.ErrURLUnparseable) {
		t.Fatalf("Expected ErrURLUnparseable, got: %v", err)
	}
	// The deploy itself may have succeeded; the output is preserved for
	// the caller to decide what to do.
	if result == nil || result.Output == "" {
		t.Error("Expected result with captured output alongside the error")
	}
	if result.URL != "" {
		t.Errorf("Expected empty URL, got %q", result.URL)
	}
}

func TestDeployTimeoutIsDistinct(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	slow := &timeoutStrategy{}
	d := newTestDeployer(t.TempDir(), DeployOptions{}, slow)

	_, err := d.Deploy(ctx)
	if !errors.Is(err, perrors.ErrDeployTimeout) {
		t.Fatalf("Expected ErrDeployTimeout, got: %v", err)
	}
	if errors.Is(err, perrors.ErrDeployFailed) {
		t.Errorf("Timeout must not be reported as a non-zero exit: %v", err)
	}
}

// timeoutStrategy simulates a command killed by context expiry.
type timeoutStrategy struct{}

func (timeoutStrategy) name() string { return "slow" }

func (timeoutStrategy) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	<-ctx.Done()
	return nil, fmt.Errorf("%w: signal: killed", perrors.ErrDeployFailed)
}
