package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/playlist-grab/internal/model"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	MinPrefixLength     = 10
	PlaylistSuffix      = " Playlist"
)

// YTDLPParserService lists playlists with the native Go yt-dlp port. The
// listing carries no playlist title, so one is derived from the item titles.
type YTDLPParserService struct{}

// NewYTDLPParserService creates a new parser service
func NewYTDLPParserService() *YTDLPParserService {
	return &YTDLPParserService{}
}

// ListPlaylist fetches every item of the playlist
func (y *YTDLPParserService) ListPlaylist(ctx context.Context, playlistID, url string) (*model.Playlist, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	links := make([]string, 0, len(items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		links = append(links, VideoURL(it.VideoID))
		titles = append(titles, it.Title)
	}

	return model.NewPlaylist(playlistID, playlistTitleFromItems(titles), url, links), nil
}

// playlistTitleFromItems guesses a playlist title from its first item titles
func playlistTitleFromItems(titles []string) string {
	if len(titles) == 0 {
		return DefaultPlaylistName
	}
	if len(titles) > 1 {
		commonPrefix := findCommonPrefix(titles[0], titles[1])
		if len(commonPrefix) > MinPrefixLength {
			return strings.TrimSpace(commonPrefix) + PlaylistSuffix
		}
	}
	return titles[0] + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
