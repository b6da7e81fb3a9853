// Package logging sets up the file-backed diagnostic logger. The TUI runs
// in the alternate screen, so stderr is not a usable sink while playing.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger appending to the given file. The caller closes the
// returned Closer when done.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, f, nil
}
