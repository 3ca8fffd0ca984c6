package hosting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	perrors "github.com/riverfold/privydash/internal/errors"
	logger "github.com/riverfold/privydash/internal/logging"
)

// DeployTimeout bounds the hosting command regardless of strategy.
// Exceeding it is a distinct failure from a non-zero exit.
const DeployTimeout = 120 * time.Second

// hostingCommand is the external deploy tool.
const hostingCommand = "firebase"

// Runner invokes the hosting deploy and recovers the published URL.
// The production implementation is Deployer; tests substitute fakes.
type Runner interface {
	Deploy(ctx context.Context) (*DeployResult, error)
}

// DeployResult is the outcome of a deploy invocation.
type DeployResult struct {
	// URL is the viewer-reachable hosting address. Empty when the deploy
	// exited cleanly but no URL could be recovered (ErrURLUnparseable).
	URL string

	// Strategy names the execution strategy that ran the command.
	Strategy string

	// Output is the captured standard output of the tool.
	Output string
}

// DeployOptions parameterize the hosting invocation.
type DeployOptions struct {
	// ProjectID selects the hosting project (--project). Optional.
	ProjectID string

	// Token authenticates in CI (--token). Optional; local runs rely on
	// the tool's own login state.
	Token string
}

// strategy is one way of executing the hosting command. Strategies are
// tried in order; a strategy is skipped over only when the command binary
// cannot be located, never on other failures.
type strategy interface {
	name() string
	run(ctx context.Context, dir string, args []string) ([]byte, error)
}

// Deployer runs the hosting command through an ordered strategy chain:
// a direct process spawn first, then a spawn that sources the user's nvm
// profile for environments where the tool is installed via an
// nvm-managed node.
type Deployer struct {
	// Dir is the working directory for the invocation; the fallback URL
	// configuration (.firebaserc) is resolved relative to it.
	Dir string

	Options DeployOptions

	logger     logger.Logger
	strategies []strategy
}

// NewDeployer returns a Deployer with the standard strategy chain.
func NewDeployer(dir string, opts DeployOptions, log logger.Logger) *Deployer {
	return &Deployer{
		Dir:     dir,
		Options: opts,
		logger:  log,
		strategies: []strategy{
			directStrategy{},
			shellProfileStrategy{},
		},
	}
}

// Deploy invokes the hosting command and parses the published URL from its
// output. On a clean exit with no parseable URL it falls back to
// synthesizing the URL from the local project configuration; if that also
// fails, the result carries the output and ErrURLUnparseable: the deploy
// may have nominally succeeded, but the URL is unknown.
func (d *Deployer) Deploy(ctx context.Context) (*DeployResult, error) {
	args := []string{"deploy", "--only", "hosting"}
	if d.Options.ProjectID != "" {
		args = append(args, "--project", d.Options.ProjectID)
	}
	if d.Options.Token != "" {
		args = append(args, "--token", d.Options.Token)
	}

	ctx, cancel := context.WithTimeout(ctx, DeployTimeout)
	defer cancel()

	var output []byte
	var used string
	var lastErr error

	for _, s := range d.strategies {
		d.logger.Debugf("Trying deploy strategy: %s", s.name())
		out, err := s.run(ctx, d.Dir, args)
		if err == nil {
			output = out
			used = s.name()
			lastErr = nil
			break
		}

		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", perrors.ErrDeployTimeout, DeployTimeout)
		}

		if errors.Is(err, exec.ErrNotFound) {
			// Binary not locatable under this strategy; the next strategy
			// changes how the command is found, not what it does.
			d.logger.Debugf("Strategy %s could not locate the command: %v", s.name(), err)
			lastErr = fmt.Errorf("%w: %v", perrors.ErrDeployNotFound, err)
			continue
		}

		return nil, err
	}

	if lastErr != nil {
		return nil, lastErr
	}

	result := &DeployResult{Strategy: used, Output: string(output)}

	if url, ok := ParseHostingURL(result.Output); ok {
		result.URL = url
		return result, nil
	}

	d.logger.Debugf("No hosting URL in tool output, trying %s", firebasercName)
	if url, ok := FallbackURL(d.Dir); ok {
		result.URL = url
		return result, nil
	}

	return result, perrors.ErrURLUnparseable
}

// directStrategy spawns the hosting command directly. This is the path
// taken in CI where the tool is on PATH.
type directStrategy struct{}

func (directStrategy) name() string { return "direct" }

func (directStrategy) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, hostingCommand, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	return runCommand(cmd)
}

// shellProfileStrategy re-issues the same command through bash after
// sourcing the user's nvm profile, for local machines where node (and the
// hosting tool) only exist inside an nvm-managed shell.
type shellProfileStrategy struct{}

func (shellProfileStrategy) name() string { return "shell-profile" }

func (shellProfileStrategy) run(ctx context.Context, dir string, args []string) ([]byte, error) {
	shellCmd := fmt.Sprintf(`source "$HOME/.nvm/nvm.sh" 2>/dev/null; %s %s`,
		hostingCommand, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "bash", "-c", shellCmd)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	return runCommand(cmd)
}

// runCommand executes the prepared command, returning stdout on success.
// A non-zero exit returns ErrDeployFailed carrying the tool's diagnostic
// output; a missing binary returns the raw lookup error so the strategy
// chain can distinguish it.
func runCommand(cmd *exec.Cmd) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, err
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			diag := strings.TrimSpace(stderr.String())
			if diag == "" {
				diag = err.Error()
			}
			return nil, fmt.Errorf("%w: %s", perrors.ErrDeployFailed, diag)
		}

		return nil, fmt.Errorf("%w: %v", perrors.ErrDeployFailed, err)
	}

	return stdout.Bytes(), nil
}
