package download

import (
	"context"

	"github.com/ytget/playlist-grab/internal/model"
)

// Fetcher downloads the raw media of one playlist item.
type Fetcher interface {
	Fetch(ctx context.Context, reference string) (*model.RawItem, error)
}

// Reencoder converts the fetched audio at src into the mp3 at dst.
type Reencoder interface {
	Reencode(ctx context.Context, src, dst string) error
}

// TagWriter writes track metadata into the file at path. Individual fields
// that fail are skipped; an error means the file could not be tagged at all.
type TagWriter interface {
	WriteTags(path string, track *model.Track, album, genre string) error
}

// Checkpoint marks a point in an attempt that observers are told about.
type Checkpoint int

const (
	// CheckpointFetchStarted fires before every fetch attempt
	CheckpointFetchStarted Checkpoint = iota + 1

	// CheckpointFetched fires right after a fetch succeeded
	CheckpointFetched

	// CheckpointTagged fires once tags are written and the item is done
	CheckpointTagged
)

// String returns the checkpoint name
func (c Checkpoint) String() string {
	switch c {
	case CheckpointFetchStarted:
		return "fetch-started"
	case CheckpointFetched:
		return "fetched"
	case CheckpointTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Item identifies the playlist item and attempt a checkpoint belongs to.
type Item struct {
	Index     int
	Reference string
	Attempt   int
}

// Observer is notified synchronously at each checkpoint.
type Observer interface {
	OnCheckpoint(item Item, checkpoint Checkpoint)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(item Item, checkpoint Checkpoint)

// OnCheckpoint calls f.
func (f ObserverFunc) OnCheckpoint(item Item, checkpoint Checkpoint) {
	f(item, checkpoint)
}
