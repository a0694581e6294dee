//go:build !unix && !windows

package store

import "os"

// No advisory locking on this platform; writes are still atomic.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
