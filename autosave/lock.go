package autosave

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"snapkeep/log"
)

// LockFileName is the zero-byte sentinel used for exclusive-access
// arbitration of an auto-save directory.
const LockFileName = ".lock"

// acquireLock attempts a non-blocking exclusive lock on the directory
// sentinel. It returns nil when the lock cannot be had for any reason; the
// engine then runs with auto-save disabled for the session.
func acquireLock(dir string) *flock.Flock {
	fl := flock.New(filepath.Join(dir, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		log.WarningLog.Printf("auto-save disabled: could not lock %s: %v", fl.Path(), err)
		return nil
	}
	if !ok {
		log.WarningLog.Printf("auto-save disabled: %s is held by another instance", fl.Path())
		return nil
	}
	return fl
}
