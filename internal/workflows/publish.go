package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/riverfold/privydash/internal/audit"
	"github.com/riverfold/privydash/internal/configs"
	"github.com/riverfold/privydash/internal/crypto"
	perrors "github.com/riverfold/privydash/internal/errors"
	"github.com/riverfold/privydash/internal/hosting"
	"github.com/riverfold/privydash/internal/keystore"
	logger "github.com/riverfold/privydash/internal/logging"
)

// Deps carries the external collaborators for a pipeline run. They are
// constructed once at process start and passed by reference so tests can
// substitute fakes for the key store and the deploy runner.
type Deps struct {
	Config   *configs.ProjectConfig
	Env      *configs.Env
	Store    keystore.Store
	Site     *hosting.Site
	Deployer hosting.Runner
	Logger   logger.Logger

	// WorkDir is where the audit log lives; usually the working directory.
	WorkDir string

	// Probe, when set, checks the published URL after a successful deploy.
	// Failures are logged, never fatal.
	Probe func(url string, log logger.Logger) error
}

// PublishOptions configures the publish workflow.
type PublishOptions struct {
	// ReportPath overrides the configured report artifact path.
	ReportPath string

	// Title overrides the configured dashboard title.
	Title string

	// DryRun stops before any external write: the report is read and
	// encrypted in memory, then the run reports what it would have done.
	DryRun bool

	// SkipDeploy prepares and restores the template without invoking the
	// hosting tool. Useful when debugging the template contract.
	SkipDeploy bool
}

// PublishResult contains the outcome of a publish run.
type PublishResult struct {
	// URL is the published address. Empty when unknown (see URLUnknown).
	URL string

	// URLUnknown is set when the deploy exited cleanly but no URL could be
	// parsed or synthesized. The deploy may have succeeded.
	URLUnknown bool

	// Recipients is the number of authorized identities written.
	Recipients int

	// PayloadBytes is the size of the hex-encoded encrypted payload.
	PayloadBytes int

	// Strategy names the deploy execution strategy that ran.
	Strategy string

	DryRun     bool
	SkipDeploy bool
}

// Publish runs the secure publish pipeline: encrypt the report artifact
// with a fresh key, store the key and allowlist in the authorization
// document, inject the ciphertext into the hosting template, deploy, and
// restore the template on every exit path.
//
// The pipeline never publishes partially. If the key store write fails the
// run aborts before any ciphertext reaches disk (fail-closed); if the
// deploy fails the template is still returned to its pristine state.
//
// Returns ErrTemplateMissing if the hosting directory or template is absent.
// Returns ErrConfigurationMissing if the key store is not configured.
// Returns ErrKeyStoreWriteFailed if the authorization write fails.
// Returns ErrPublishLocked if another run holds the template lock.
// Returns ErrURLUnparseable alongside a result when the deploy exited
// cleanly but no URL could be recovered.
func Publish(ctx context.Context, deps Deps, opts PublishOptions) (*PublishResult, error) {
	start := time.Now()

	title := opts.Title
	if title == "" {
		title = deps.Config.App.Title
	}
	reportPath := opts.ReportPath
	if reportPath == "" {
		reportPath = deps.Config.App.ArtifactPath
	}

	// Preconditions come before encryption so no ciphertext exists at all
	// when the template contract is broken.
	if err := deps.Site.CheckPreconditions(); err != nil {
		return nil, err
	}

	if deps.Store == nil && !opts.DryRun {
		return nil, fmt.Errorf("%w: no key store configured", perrors.ErrConfigurationMissing)
	}

	report, err := os.ReadFile(reportPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", perrors.ErrArtifactNotFound, reportPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report artifact: %w", err)
	}
	if len(report) == 0 {
		return nil, fmt.Errorf("%w: %s", perrors.ErrArtifactEmpty, reportPath)
	}

	recipients := deps.Env.Recipients()
	if len(recipients) == 0 {
		// Not fatal: the write proceeds, but nobody will be able to read
		// the key until RECIPIENT_EMAIL is configured.
		deps.Logger.WarnfAlways("No authorized recipients configured (RECIPIENT_EMAIL)")
	}

	payloadHex, keyHex, err := crypto.Encrypt(report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrEncryptFailed, err)
	}
	deps.Logger.Infof("Report encrypted (%d bytes payload)", len(payloadHex))

	result := &PublishResult{
		Recipients:   len(recipients),
		PayloadBytes: len(payloadHex),
		DryRun:       opts.DryRun,
		SkipDeploy:   opts.SkipDeploy,
	}

	if opts.DryRun {
		deps.Logger.Infof("Dry run: stopping before key store write")
		return result, nil
	}

	// The lock must be held before the key store write: a refused run that
	// had already replaced the live key would leave the concurrent run's
	// published ciphertext paired with a superseded key.
	release, err := deps.Site.AcquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	// Fail-closed: the ciphertext must never reach the template while the
	// key is not durably retrievable by authorized viewers.
	if err := deps.Store.Put(ctx, keyHex, recipients); err != nil {
		logFailure(deps, start, result, "key store write failed")
		return nil, err
	}
	deps.Logger.Infof("Encryption key stored for %d recipients", len(recipients))

	// The template is restored on every exit path from here on, success
	// or failure, so no ciphertext survives in the working tree.
	defer func() {
		if err := deps.Site.Restore(); err != nil {
			deps.Logger.Errorf("Failed to restore template: %v", err)
		} else {
			deps.Logger.Debugf("Template restored to placeholder state")
		}
	}()

	if err := deps.Site.Inject(title, payloadHex); err != nil {
		logFailure(deps, start, result, "template injection failed")
		return nil, err
	}

	// A template without the data placeholder makes Inject a silent no-op;
	// deploying it would publish a page with nothing to decrypt.
	injected, err := os.ReadFile(deps.Site.TemplatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read injected template: %w", err)
	}
	if !strings.Contains(string(injected), payloadHex) {
		logFailure(deps, start, result, "ciphertext slot absent from template")
		return nil, fmt.Errorf("%w: ciphertext slot absent from %s", perrors.ErrPlaceholderMissing, deps.Site.TemplatePath())
	}
	deps.Logger.Infof("Ciphertext injected into template")

	if opts.SkipDeploy {
		deps.Logger.Infof("Skipping deploy (--skip-deploy)")
		return result, nil
	}

	deployResult, err := deps.Deployer.Deploy(ctx)
	if err != nil && !errors.Is(err, perrors.ErrURLUnparseable) {
		switch {
		case errors.Is(err, perrors.ErrDeployTimeout):
			logFailure(deps, start, result, "deploy timed out")
		case errors.Is(err, perrors.ErrDeployNotFound):
			logFailure(deps, start, result, "hosting command not found")
		default:
			logFailure(deps, start, result, "deploy failed")
		}
		return nil, err
	}

	if deployResult != nil {
		result.Strategy = deployResult.Strategy
		result.URL = deployResult.URL
	}

	entry := audit.NewEntry("publish")
	entry.Recipients = result.Recipients
	entry.PayloadBytes = result.PayloadBytes
	entry.Strategy = result.Strategy
	entry.DurationMS = time.Since(start).Milliseconds()

	if errors.Is(err, perrors.ErrURLUnparseable) {
		// The deploy exited cleanly but the URL is unknown. The run is
		// reported as a failure requiring manual follow-up, while the
		// audit trail records that a deploy did happen.
		result.URLUnknown = true
		entry.Outcome = "url-unknown"
		audit.Log(deps.WorkDir, entry)
		return result, err
	}

	entry.URL = result.URL
	entry.Outcome = "success"
	audit.Log(deps.WorkDir, entry)

	if deps.Probe != nil && result.URL != "" {
		if err := deps.Probe(result.URL, deps.Logger); err != nil {
			deps.Logger.Warnf("Published URL not yet reachable: %v", err)
		}
	}

	return result, nil
}

// logFailure records a failed publish attempt in the audit log. The detail
// is a short fixed description, never raw tool output or error text that
// could carry secret material.
func logFailure(deps Deps, start time.Time, result *PublishResult, detail string) {
	entry := audit.NewEntry("publish")
	entry.Recipients = result.Recipients
	entry.PayloadBytes = result.PayloadBytes
	entry.Outcome = "failed"
	entry.Detail = detail
	entry.DurationMS = time.Since(start).Milliseconds()
	audit.Log(deps.WorkDir, entry)
}
