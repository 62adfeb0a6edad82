package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/playlist-grab/internal/model"
)

// stubFetcher writes a small raw file per call and returns the configured
// metadata. failures[i] makes the i-th call (0-based) fail.
type stubFetcher struct {
	dir      string
	items    map[string]model.RawItem
	failures map[int]error
	calls    []string
}

func (f *stubFetcher) Fetch(_ context.Context, reference string) (*model.RawItem, error) {
	n := len(f.calls)
	f.calls = append(f.calls, reference)
	if err, ok := f.failures[n]; ok {
		return nil, err
	}

	raw, ok := f.items[reference]
	if !ok {
		return nil, errors.New("video unavailable")
	}
	raw.Reference = reference
	raw.LocalPath = filepath.Join(f.dir, reference+".webm")
	if err := os.WriteFile(raw.LocalPath, []byte("raw"), 0o644); err != nil {
		return nil, err
	}
	return &raw, nil
}

type stubReencoder struct {
	err   error
	calls int
}

func (r *stubReencoder) Reencode(_ context.Context, src, dst string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if _, err := os.Stat(src); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte("ID3"), 0o644)
}

type tagCall struct {
	path  string
	track model.Track
	album string
	genre string
}

type stubTagWriter struct {
	err   error
	calls []tagCall
}

func (w *stubTagWriter) WriteTags(path string, track *model.Track, album, genre string) error {
	w.calls = append(w.calls, tagCall{path: path, track: *track, album: album, genre: genre})
	return w.err
}

type fixture struct {
	out      string
	fetcher  *stubFetcher
	encoder  *stubReencoder
	tagger   *stubTagWriter
	service  *Service
	playlist *model.Playlist
}

func newFixture(t *testing.T, title string, items map[string]model.RawItem, order ...string) *fixture {
	t.Helper()
	f := &fixture{
		out:     t.TempDir(),
		fetcher: &stubFetcher{dir: t.TempDir(), items: items, failures: map[int]error{}},
		encoder: &stubReencoder{},
		tagger:  &stubTagWriter{},
	}
	f.service = NewService(f.fetcher, f.encoder, f.tagger, WithVerbosity(0))
	f.playlist = model.NewPlaylist("PL1", title, "https://www.youtube.com/playlist?list=PL1", order)
	return f
}

func TestNewService_Defaults(t *testing.T) {
	service := NewService(nil, nil, nil)
	if service.MaxAttempts() != DefaultMaxAttempts {
		t.Errorf("MaxAttempts() = %d, expected %d", service.MaxAttempts(), DefaultMaxAttempts)
	}
	if service.verbosity != DefaultVerbosity {
		t.Errorf("verbosity = %d, expected %d", service.verbosity, DefaultVerbosity)
	}

	service = NewService(nil, nil, nil, WithMaxAttempts(2), WithMaxAttempts(0), WithVerbosity(2))
	if service.MaxAttempts() != 2 {
		t.Errorf("MaxAttempts() = %d, expected 2", service.MaxAttempts())
	}
	if service.verbosity != 2 {
		t.Errorf("verbosity = %d, expected 2", service.verbosity)
	}
}

func TestDownloadPlaylist_DirectoryPrecondition(t *testing.T) {
	f := newFixture(t, "My Mix", map[string]model.RawItem{"a": {Title: "x"}}, "a")

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		batch, err := f.service.DownloadPlaylist(f.playlist, dir, "", nil)
		if batch != nil {
			t.Errorf("DownloadPlaylist(%q) returned a batch", dir)
		}

		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("DownloadPlaylist(%q) error = %v, expected *ConfigurationError", dir, err)
		}
		if cfgErr.Path != dir {
			t.Errorf("ConfigurationError.Path = %q, expected %q", cfgErr.Path, dir)
		}
	}

	if len(f.fetcher.calls) != 0 || f.encoder.calls != 0 || len(f.tagger.calls) != 0 {
		t.Errorf("collaborators called: fetch=%d reencode=%d tag=%d, expected none",
			len(f.fetcher.calls), f.encoder.calls, len(f.tagger.calls))
	}
}

func TestDownloadPlaylist_DirectoryCheckedBeforeEmptiness(t *testing.T) {
	f := newFixture(t, "Empty", nil)

	_, err := f.service.DownloadPlaylist(f.playlist, filepath.Join(f.out, "nope"), "", nil)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("DownloadPlaylist() error = %v, expected *ConfigurationError", err)
	}
}

func TestDownloadPlaylist_EmptyPlaylist(t *testing.T) {
	f := newFixture(t, "Empty", nil)

	batch, err := f.service.DownloadPlaylist(f.playlist, f.out, "", nil)
	if batch != nil {
		t.Error("DownloadPlaylist() returned a batch for an empty playlist")
	}
	if !errors.Is(err, ErrEmptyPlaylist) || !errors.Is(err, model.ErrEmptyPlaylist) {
		t.Errorf("DownloadPlaylist() error = %v, expected %v", err, ErrEmptyPlaylist)
	}

	if _, err = f.service.DownloadPlaylist(nil, f.out, "", nil); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("DownloadPlaylist(nil) error = %v, expected %v", err, ErrEmptyPlaylist)
	}
}

func TestDownloadPlaylist_BatchID(t *testing.T) {
	f := newFixture(t, "Mix", map[string]model.RawItem{"a": {Title: "x"}}, "a")

	first, err := f.service.DownloadPlaylist(f.playlist, f.out, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.service.DownloadPlaylist(f.playlist, f.out, "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(first.ID(), BatchIDPrefix) {
		t.Errorf("ID() = %q, expected prefix %q", first.ID(), BatchIDPrefix)
	}
	if first.ID() == second.ID() {
		t.Errorf("batch IDs are not unique: %q", first.ID())
	}
	if first.Playlist() != f.playlist {
		t.Error("Playlist() did not return the downloaded playlist")
	}
	if total := first.Progress().Total; total != 1 {
		t.Errorf("Progress().Total = %d, expected 1", total)
	}
}

func TestCheckpointString(t *testing.T) {
	tests := []struct {
		checkpoint Checkpoint
		expected   string
		value      int
	}{
		{CheckpointFetchStarted, "fetch-started", 1},
		{CheckpointFetched, "fetched", 2},
		{CheckpointTagged, "tagged", 3},
		{Checkpoint(0), "unknown", 0},
	}

	for _, test := range tests {
		if result := test.checkpoint.String(); result != test.expected {
			t.Errorf("Checkpoint(%d).String() = %q, expected %q", test.value, result, test.expected)
		}
		if int(test.checkpoint) != test.value {
			t.Errorf("%s = %d, expected %d", test.expected, int(test.checkpoint), test.value)
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	attempt := &AttemptError{Reference: "a", Attempt: 2, State: model.ItemStateReencoding, Err: cause}
	exhausted := &ExhaustedError{Reference: "a", Attempts: 5, Last: attempt}

	if !errors.Is(exhausted, cause) {
		t.Error("ExhaustedError does not unwrap to the attempt cause")
	}
	var got *AttemptError
	if !errors.As(exhausted, &got) {
		t.Fatal("ExhaustedError does not unwrap to *AttemptError")
	}
	if got.Attempt != 2 {
		t.Errorf("Attempt = %d, expected 2", got.Attempt)
	}
	if !strings.Contains(exhausted.Error(), "after 5 attempts") {
		t.Errorf("Error() = %q, expected it to mention the attempt count", exhausted.Error())
	}

	cfg := &ConfigurationError{Path: "/x", Err: os.ErrNotExist}
	if !errors.Is(cfg, os.ErrNotExist) {
		t.Error("ConfigurationError does not unwrap to its cause")
	}
}
