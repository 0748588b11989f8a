// Package appdir locates the per-user state directory (~/.rc5-go, or
// $RC5_HOME when set) holding the default config and log journal.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"rc5-go/pkg/log"
)

const (
	dirName = ".rc5-go"
	envHome = "RC5_HOME"
)

var (
	once sync.Once
	dir  string
)

// AppDir returns the state directory, creating it on first use. It falls
// back to the working directory when no home directory is available.
func AppDir() string {
	once.Do(func() {
		dir = os.Getenv(envHome)
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			dir = filepath.Join(home, dirName)
		}
		if err := ensure(dir); err != nil {
			log.Warn().Err(err).Msg("state directory unavailable, relative config and journal paths will fail")
		}
	})
	return dir
}

func ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("appdir: create %s: %w", dir, err)
	}
	return nil
}

// Path joins name onto AppDir unless name is already absolute.
func Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(AppDir(), name)
}
