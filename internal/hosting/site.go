package hosting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/riverfold/privydash/internal/errors"
	logger "github.com/riverfold/privydash/internal/logging"
)

// strayReportName is a directly-addressable plaintext copy of the report
// that earlier tooling sometimes left next to the template. Publishing it
// would bypass the authorization gate entirely.
const strayReportName = "dashboard.html"

// TemplateState describes the on-disk template.
type TemplateState int

const (
	// TemplateMissing means the hosting directory or template file is absent.
	TemplateMissing TemplateState = iota

	// TemplatePristine means both placeholders are present.
	TemplatePristine

	// TemplateInjected means at least one placeholder has been substituted,
	// so the file may contain live ciphertext from a crashed run.
	TemplateInjected
)

// Site is the static hosting surface: a directory containing the template
// that receives the ciphertext during a publish window. The publish
// pipeline owns the template exclusively for the duration of one run.
type Site struct {
	// Dir is the hosting directory handed to the deploy tool.
	Dir string

	// Template is the template filename inside Dir.
	Template string

	logger logger.Logger
}

// NewSite returns a Site rooted at dir.
func NewSite(dir, template string, log logger.Logger) *Site {
	return &Site{Dir: dir, Template: template, logger: log}
}

// TemplatePath returns the absolute or relative path of the template file.
func (s *Site) TemplatePath() string {
	return filepath.Join(s.Dir, s.Template)
}

// CheckPreconditions verifies the hosting directory and template file
// exist. Their absence is a fatal precondition failure, not retried.
func (s *Site) CheckPreconditions() error {
	if _, err := os.Stat(s.Dir); err != nil {
		return fmt.Errorf("%w: hosting directory %s does not exist", perrors.ErrTemplateMissing, s.Dir)
	}
	if _, err := os.Stat(s.TemplatePath()); err != nil {
		return fmt.Errorf("%w: %s does not exist", perrors.ErrTemplateMissing, s.TemplatePath())
	}
	return nil
}

// Inject substitutes the title and ciphertext placeholders in the template,
// overwriting it in place. A placeholder absent from the template is a
// no-op for that slot; callers treat an unsubstituted placeholder in the
// published output as a template contract violation.
//
// Inject also removes any stray plaintext copy of the report next to the
// template, so the decryption gate cannot be bypassed by direct file
// access. That removal is best-effort.
func (s *Site) Inject(title, payloadHex string) error {
	if err := s.CheckPreconditions(); err != nil {
		return err
	}

	content, err := os.ReadFile(s.TemplatePath())
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	updated := strings.ReplaceAll(string(content), TitlePlaceholder, title)
	updated = strings.ReplaceAll(updated, DataPlaceholder, payloadHex)

	// #nosec G306 -- The injected template holds ciphertext only and is
	// about to be published; it must be readable by the deploy tool.
	if err := os.WriteFile(s.TemplatePath(), []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	strayPath := filepath.Join(s.Dir, strayReportName)
	if _, err := os.Stat(strayPath); err == nil {
		if err := os.Remove(strayPath); err != nil {
			s.logger.Warnf("Failed to remove stray report copy %s: %v", strayPath, err)
		} else {
			s.logger.Debugf("Removed stray report copy %s", strayPath)
		}
	}

	return nil
}

// Restore rewrites the template to its canonical placeholder-bearing
// content. It runs after every publish attempt, success or failure, so no
// secret or plaintext is left behind in the working tree.
func (s *Site) Restore() error {
	if _, err := os.Stat(s.Dir); err != nil {
		return fmt.Errorf("%w: hosting directory %s does not exist", perrors.ErrTemplateMissing, s.Dir)
	}

	// #nosec G306 -- The canonical template contains only placeholders.
	if err := os.WriteFile(s.TemplatePath(), []byte(canonicalTemplate), 0644); err != nil {
		return fmt.Errorf("failed to restore template: %w", err)
	}

	return nil
}

// State reports whether the template is missing, pristine, or injected.
func (s *Site) State() (TemplateState, error) {
	content, err := os.ReadFile(s.TemplatePath())
	if os.IsNotExist(err) {
		return TemplateMissing, nil
	}
	if err != nil {
		return TemplateMissing, fmt.Errorf("failed to read template: %w", err)
	}

	text := string(content)
	if strings.Contains(text, TitlePlaceholder) && strings.Contains(text, DataPlaceholder) {
		return TemplatePristine, nil
	}
	return TemplateInjected, nil
}

// Pristine reports whether the template currently carries both placeholders.
func (s *Site) Pristine() (bool, error) {
	state, err := s.State()
	if err != nil {
		return false, err
	}
	return state == TemplatePristine, nil
}

func (t TemplateState) String() string {
	switch t {
	case TemplatePristine:
		return "pristine"
	case TemplateInjected:
		return "injected"
	default:
		return "missing"
	}
}
