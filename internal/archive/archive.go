// Package archive guards a yt-dlp download archive file with an exclusive
// lock so concurrent runs never append to it at the same time.
package archive

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"mediagrab/internal/util"
)

// ErrLocked is returned when another process holds the archive.
var ErrLocked = errors.New("download archive is in use by another process")

// Lock takes an exclusive lock on path+".lock" without blocking. The
// returned release func unlocks it.
func Lock(path string) (release func() error, err error) {
	if path == "" {
		return nil, errors.New("archive path is empty")
	}
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	fl := flock.New(path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	return fl.Unlock, nil
}
