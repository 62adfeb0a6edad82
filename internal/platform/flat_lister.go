package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/playlist-grab/internal/model"
)

// FlatPlaylistLister lists playlists with the yt-dlp binary without
// resolving the individual videos. Unlike the native lister it reports the
// real playlist title.
type FlatPlaylistLister struct{}

// NewFlatPlaylistLister creates a lister backed by the yt-dlp binary
func NewFlatPlaylistLister() *FlatPlaylistLister {
	return &FlatPlaylistLister{}
}

// flatPlaylist is the subset of yt-dlp's --dump-single-json output we read
type flatPlaylist struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ListPlaylist runs yt-dlp over the playlist URL
func (l *FlatPlaylistLister) ListPlaylist(ctx context.Context, playlistID, url string) (*model.Playlist, error) {
	dl := ytdlp.New().
		FlatPlaylist().
		DumpSingleJSON()

	result, err := dl.Run(ctx, fmt.Sprintf(YouTubePlaylistURLTemplate, playlistID))
	if err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	return parseFlatPlaylist(result.Stdout, playlistID, url)
}

// parseFlatPlaylist turns the single JSON document yt-dlp prints into a
// playlist. Entries without an ID or URL are dropped.
func parseFlatPlaylist(output, playlistID, url string) (*model.Playlist, error) {
	var doc flatPlaylist
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %w", err)
	}

	links := make([]string, 0, len(doc.Entries))
	titles := make([]string, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		switch {
		case strings.HasPrefix(entry.URL, "http"):
			links = append(links, entry.URL)
		case entry.ID != "":
			links = append(links, VideoURL(entry.ID))
		default:
			continue
		}
		titles = append(titles, entry.Title)
	}

	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = playlistTitleFromItems(titles)
	}
	if doc.ID != "" {
		playlistID = doc.ID
	}

	return model.NewPlaylist(playlistID, title, url, links), nil
}
