package download

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/playlist-grab/internal/metadata"
	"github.com/ytget/playlist-grab/internal/model"
)

// Result is the outcome of one playlist item. State is ItemStateDone or
// ItemStateSkipped; a skipped item has a nil Track and zero Elapsed.
type Result struct {
	Index      int
	Reference  string
	Track      *model.Track
	Genre      string // genre actually written
	OutputPath string
	Elapsed    time.Duration
	Attempts   int
	State      model.ItemState
	Err        error
	Progress   model.BatchProgress
}

// Skipped reports whether the item exhausted its attempts
func (r Result) Skipped() bool {
	return r.State == model.ItemStateSkipped
}

// Batch walks one playlist. It is not safe for concurrent use; items are
// processed strictly in order by whoever calls Next.
type Batch struct {
	id       string
	svc      *Service
	playlist *model.Playlist
	dir      string
	genre    string
	observer Observer
	next     int
	progress model.BatchProgress
}

// ID returns the batch identifier
func (b *Batch) ID() string { return b.id }

// Playlist returns the playlist being downloaded
func (b *Batch) Playlist() *model.Playlist { return b.playlist }

// Progress returns a snapshot of the running aggregate
func (b *Batch) Progress() model.BatchProgress { return b.progress }

// Done reports whether every item has been processed
func (b *Batch) Done() bool { return b.next >= b.playlist.Len() }

// Next processes the next playlist item and returns its result. It returns
// false once the playlist is exhausted, or if ctx is already cancelled when
// the item would start. Cancelling ctx never interrupts an item in flight.
func (b *Batch) Next(ctx context.Context) (Result, bool) {
	if b.Done() || ctx.Err() != nil {
		return Result{}, false
	}

	index := b.next
	b.next++
	reference := b.playlist.Items[index]
	work := context.WithoutCancel(ctx)

	var lastErr error
	for attempt := 1; attempt <= b.svc.maxAttempts; attempt++ {
		item := Item{Index: index, Reference: reference, Attempt: attempt}

		res, err := b.attempt(work, item)
		if err == nil {
			b.progress.RecordCompleted(res.Elapsed)
			res.Progress = b.progress
			b.debugf("Finished %s as %q in %s", reference, res.Track.Filename, model.FormatClock(res.Elapsed))
			return res, true
		}

		lastErr = err
		if b.svc.verbosity > 0 {
			b.svc.log.Warnf("Could not download %s: %v", reference, err)
		}
	}

	b.progress.RecordSkipped()
	exhausted := &ExhaustedError{Reference: reference, Attempts: b.svc.maxAttempts, Last: lastErr}
	if b.svc.verbosity > 0 {
		b.svc.log.Warnf("Skipping item %d/%d: %v", index+1, b.playlist.Len(), exhausted)
	}

	return Result{
		Index:     index,
		Reference: reference,
		Attempts:  b.svc.maxAttempts,
		State:     model.ItemStateSkipped,
		Err:       exhausted,
		Progress:  b.progress,
	}, true
}

// All returns the remaining results as an iterator. Breaking out of the loop
// leaves the rest of the batch unprocessed.
func (b *Batch) All(ctx context.Context) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			res, ok := b.Next(ctx)
			if !ok || !yield(res) {
				return
			}
		}
	}
}

// attempt runs one full fetch, infer, re-encode, tag pass. Whatever it
// produced on disk is removed again when it fails.
func (b *Batch) attempt(ctx context.Context, item Item) (Result, error) {
	fail := func(state model.ItemState, err error) (Result, error) {
		return Result{}, &AttemptError{Reference: item.Reference, Attempt: item.Attempt, State: state, Err: err}
	}

	start := time.Now()
	b.notify(item, CheckpointFetchStarted)
	b.debugf("Attempting to grab %s (attempt %d/%d)", item.Reference, item.Attempt, b.svc.maxAttempts)

	b.enter(item, model.ItemStateFetching)
	raw, err := b.svc.fetcher.Fetch(ctx, item.Reference)
	if err == nil && raw == nil {
		err = errors.New("fetcher returned no item")
	}
	if err != nil {
		return fail(model.ItemStateFetching, err)
	}
	b.notify(item, CheckpointFetched)

	b.enter(item, model.ItemStateInferring)
	track := metadata.Infer(raw)
	b.debugf("Metadata received: author=%q title=%q filename=%q", track.Author, track.Title, track.Filename)

	output := filepath.Join(b.dir, track.Filename+OutputExtension)
	b.enter(item, model.ItemStateReencoding)
	if err := b.svc.reencoder.Reencode(ctx, raw.LocalPath, output); err != nil {
		discard(raw.LocalPath, output)
		return fail(model.ItemStateReencoding, err)
	}
	discard(raw.LocalPath)

	genre := b.genre
	if genre == "" {
		genre = track.Genre
	}
	b.enter(item, model.ItemStateTagging)
	if err := b.svc.tagger.WriteTags(output, &track, b.playlist.Title, genre); err != nil {
		discard(output)
		return fail(model.ItemStateTagging, err)
	}

	elapsed := time.Since(start)
	b.notify(item, CheckpointTagged)

	return Result{
		Index:      item.Index,
		Reference:  item.Reference,
		Track:      &track,
		Genre:      genre,
		OutputPath: output,
		Elapsed:    elapsed,
		Attempts:   item.Attempt,
		State:      model.ItemStateDone,
	}, nil
}

func (b *Batch) notify(item Item, checkpoint Checkpoint) {
	if b.observer != nil {
		b.observer.OnCheckpoint(item, checkpoint)
	}
}

// enter logs the pipeline stage an attempt moves into
func (b *Batch) enter(item Item, state model.ItemState) {
	b.debugf("Item %d/%d attempt %d: %s", item.Index+1, b.playlist.Len(), item.Attempt, state)
}

func (b *Batch) debugf(format string, args ...any) {
	if b.svc.verbosity > 1 {
		b.svc.log.Debugf(format, args...)
	}
}

// discard removes leftovers of a failed attempt, ignoring files that are
// already gone.
func discard(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Debugf("Failed to remove %s: %v", p, err)
		}
	}
}
