package download

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/playlist-grab/internal/model"
	"github.com/ytget/playlist-grab/pkg/logger"
)

// Defaults
const (
	DefaultMaxAttempts = 5
	DefaultVerbosity   = 1
	BatchIDPrefix      = "batch-"
	OutputExtension    = ".mp3"
)

var log = logger.Get("Download")

// Service wires the collaborators of the pipeline and starts batches
type Service struct {
	fetcher     Fetcher
	reencoder   Reencoder
	tagger      TagWriter
	maxAttempts int
	verbosity   int
	log         *logger.Logger
}

// Option configures a Service
type Option func(*Service)

// WithMaxAttempts sets how many times an item is tried before it is skipped
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithVerbosity sets the verbosity: 0 counts failures silently, 1 logs
// failures and skips, 2 logs every stage
func WithVerbosity(v int) Option {
	return func(s *Service) {
		s.verbosity = v
	}
}

// WithLogger replaces the package logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService creates a new download service
func NewService(fetcher Fetcher, reencoder Reencoder, tagger TagWriter, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		reencoder:   reencoder,
		tagger:      tagger,
		maxAttempts: DefaultMaxAttempts,
		verbosity:   DefaultVerbosity,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAttempts returns the per-item attempt limit
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// DownloadPlaylist validates the destination and returns a Batch that
// processes the playlist one item per Next call. Nothing is fetched here.
// genre, when non-empty, overrides the inferred genre of every track. observer
// may be nil.
func (s *Service) DownloadPlaylist(playlist *model.Playlist, dir string, genre string, observer Observer) (*Batch, error) {
	if err := checkDirectory(dir); err != nil {
		return nil, err
	}
	if playlist.IsEmpty() {
		return nil, ErrEmptyPlaylist
	}

	b := &Batch{
		id:       generateBatchID(),
		svc:      s,
		playlist: playlist,
		dir:      dir,
		genre:    genre,
		observer: observer,
		progress: model.NewBatchProgress(playlist.Len()),
	}

	s.log.Infof("Starting batch %s: %q (%d items) -> %s", b.id, playlist.Title, playlist.Len(), dir)
	return b, nil
}

func checkDirectory(dir string) error {
	if dir == "" {
		return &ConfigurationError{Path: dir, Err: errors.New("no directory given")}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return &ConfigurationError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &ConfigurationError{Path: dir, Err: fmt.Errorf("not a directory")}
	}
	return nil
}

// generateBatchID generates a unique, time-ordered batch ID
func generateBatchID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(BatchIDPrefix+"%d", time.Now().UnixNano())
	}
	return BatchIDPrefix + id.String()
}
