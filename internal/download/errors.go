package download

import (
	"fmt"

	"github.com/ytget/playlist-grab/internal/model"
)

// ErrEmptyPlaylist is returned when there is nothing to download
var ErrEmptyPlaylist = model.ErrEmptyPlaylist

// ConfigurationError reports a batch that cannot start because of its setup,
// such as a missing destination directory.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid destination directory %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AttemptError is one failed pass over an item. It is retried, never returned
// on its own.
type AttemptError struct {
	Reference string
	Attempt   int
	State     model.ItemState
	Err       error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt %d for %s failed while %s: %v", e.Attempt, e.Reference, e.State, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// ExhaustedError is attached to the result of a skipped item.
type ExhaustedError struct {
	Reference string
	Attempts  int
	Last      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up on %s after %d attempts: %v", e.Reference, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
