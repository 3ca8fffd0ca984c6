package workflows

import (
	"context"

	"github.com/riverfold/privydash/internal/audit"
)

// RestoreResult contains the outcome of a forced restore.
type RestoreResult struct {
	// WasPristine indicates the template already carried its placeholders.
	WasPristine bool

	// LockBroken indicates a stale publish lock was removed.
	LockBroken bool
}

// Restore forces the template back to its canonical placeholder state and
// clears any stale publish lock. It is the recovery path after a crashed
// run that may have left live ciphertext or a held lock in the working
// tree; the next publish assumes a pristine template.
func Restore(ctx context.Context, deps Deps) (*RestoreResult, error) {
	result := &RestoreResult{}

	pristine, err := deps.Site.Pristine()
	if err == nil {
		result.WasPristine = pristine
	}

	if deps.Site.Locked() {
		if err := deps.Site.BreakLock(); err != nil {
			deps.Logger.Warnf("Failed to break stale lock: %v", err)
		} else {
			result.LockBroken = true
			deps.Logger.Infof("Removed stale publish lock")
		}
	}

	if err := deps.Site.Restore(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("restore")
	if result.LockBroken {
		entry.Detail = "stale lock removed"
	}
	audit.Log(deps.WorkDir, entry)

	return result, nil
}
