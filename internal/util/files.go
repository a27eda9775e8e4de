package util

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ClearTempDir removes leftover work directories from a previous run and
// makes sure the directory exists.
func ClearTempDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			log.Warn().Err(mkErr).Str("dir", dir).Msg("failed to create temp dir")
		}
		return
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("failed to remove stale temp entry")
		}
	}
	log.Info().Str("dir", dir).Msg("cleared temp directory")
}
