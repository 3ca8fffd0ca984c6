package hosting

import (
	"fmt"
	"os"
	"path/filepath"

	perrors "github.com/riverfold/privydash/internal/errors"
)

// lockFileName guards the template against overlapping publish runs. Two
// interleaved runs could leave the template double-injected or carrying
// live ciphertext after both finish.
const lockFileName = ".privydash.lock"

// AcquireLock takes the exclusive publish lock for the site. The returned
// release function must be called on every exit path. A held lock aborts
// the run with ErrPublishLocked.
func (s *Site) AcquireLock() (func(), error) {
	path := filepath.Join(s.Dir, lockFileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s exists", perrors.ErrPublishLocked, path)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	if err := f.Close(); err != nil {
		s.logger.Warnf("Failed to close lock file: %v", err)
	}

	release := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warnf("Failed to remove lock file %s: %v", path, err)
		}
	}
	return release, nil
}

// Locked reports whether a publish lock is currently held.
func (s *Site) Locked() bool {
	_, err := os.Stat(filepath.Join(s.Dir, lockFileName))
	return err == nil
}

// BreakLock removes a stale lock left behind by a crashed run. Only the
// recovery path uses it; a live run must release via AcquireLock's
// release function.
func (s *Site) BreakLock() error {
	err := os.Remove(filepath.Join(s.Dir, lockFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
