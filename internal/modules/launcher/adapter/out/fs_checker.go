package out

import (
	"context"
	"os"

	launcherout "threadsuite/internal/modules/launcher/port/out"
)

type FSPathChecker struct{}

func NewFSPathChecker() launcherout.PathChecker {
	return FSPathChecker{}
}

// Exists reports whether path is a regular file, following symlinks. A
// directory at a candidate location does not shadow the next candidate.
func (FSPathChecker) Exists(_ context.Context, path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
