package app

import (
	"fmt"

	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/metadata"
	"github.com/ytget/playlist-grab/internal/model"
)

// StartLine is printed before item index (0-based) starts, e.g.
// "3/12 (Estimated time remaining: 04:10)"
func StartLine(index int, progress model.BatchProgress) string {
	return fmt.Sprintf("%d/%d (Estimated time remaining: %s)",
		index+1, progress.Total, model.FormatClock(progress.EstimatedRemaining()))
}

// ResultLine describes a finished item: "<artist> - <title> (Download took: MM:SS)"
// for a download, or the reason it was skipped.
func ResultLine(res download.Result) string {
	if res.Skipped() || res.Track == nil {
		return fmt.Sprintf("Skipped %s after %d attempts: %v", res.Reference, res.Attempts, res.Err)
	}
	return fmt.Sprintf("%s - %s (Download took: %s)", res.Track.Author, res.Track.Title, model.FormatClock(res.Elapsed))
}

// SummaryLine reports the outcome of a whole batch
func SummaryLine(progress model.BatchProgress) string {
	return fmt.Sprintf("Downloaded %d of %d tracks, skipped %d, total time %s",
		progress.Completed, progress.Total, progress.Skipped, model.FormatClock(progress.Cumulative))
}

// SuggestGenre proposes a genre override from the playlist title
func SuggestGenre(playlist *model.Playlist) string {
	if playlist == nil {
		return ""
	}
	return metadata.PullGenre(playlist.Title)
}
