package store

import (
	"os"

	"github.com/cockroachdb/errors"
)

const lockSuffix = ".lock"

// withLock runs fn while holding an exclusive advisory lock on path's
// companion lock file. The lock is released however fn returns.
func withLock(path string, fn func() error) (err error) {
	f, err := os.OpenFile(path+lockSuffix, os.O_CREATE|os.O_RDWR, fileMode)
	if err != nil {
		return ioFailure(err, "open lock for %s", path)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return ioFailure(err, "lock %s", path)
	}
	defer func() {
		uerr := unlockFile(f)
		cerr := f.Close()
		if err == nil {
			err = ioFailure(errors.CombineErrors(uerr, cerr), "unlock %s", path)
		}
	}()
	return fn()
}
