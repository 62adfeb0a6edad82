package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/playlist-grab/internal/model"
	"github.com/ytget/playlist-grab/pkg/logger"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	YouTubePlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
)

// Resolver names accepted by NewResolver
const (
	ResolverBinary = "binary"
	ResolverNative = "native"
)

// ErrEmptyPlaylist is returned when a playlist resolves to zero items
var ErrEmptyPlaylist = model.ErrEmptyPlaylist

var log = logger.Get("Platform")

// Lister enumerates the items of a playlist
type Lister interface {
	ListPlaylist(ctx context.Context, playlistID, url string) (*model.Playlist, error)
}

// PlaylistParserService resolves YouTube playlist links into playlists
type PlaylistParserService struct {
	lister  Lister
	timeout time.Duration
}

// NewPlaylistParserService creates a new playlist parser service backed by lister
func NewPlaylistParserService(lister Lister) *PlaylistParserService {
	return &PlaylistParserService{
		lister:  lister,
		timeout: DefaultPlaylistParseTimeout,
	}
}

// NewResolver returns a parser service for the named resolver. An empty name
// selects the yt-dlp binary.
func NewResolver(name string) (*PlaylistParserService, error) {
	switch name {
	case "", ResolverBinary:
		return NewPlaylistParserService(NewFlatPlaylistLister()), nil
	case ResolverNative:
		return NewPlaylistParserService(NewYTDLPParserService()), nil
	default:
		return nil, fmt.Errorf("unknown resolver %q", name)
	}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Resolve validates a playlist link and returns its title and item links
func (p *PlaylistParserService) Resolve(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist URL %q: %w", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	playlist, err := p.lister.ListPlaylist(ctx, playlistID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist %s: %w", playlistID, err)
	}
	if playlist.IsEmpty() {
		return nil, ErrEmptyPlaylist
	}

	log.Infof("Resolved playlist %s: %q with %d items", playlistID, playlist.Title, playlist.Len())
	return playlist, nil
}

// IsPlaylistURL reports whether url carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ExtractPlaylistID extracts the playlist ID from a YouTube playlist URL.
// Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !IsPlaylistURL(url) {
		return "", fmt.Errorf("URL does not contain playlist parameter")
	}

	_, playlistID, _ := strings.Cut(url, PlaylistURLParam)
	playlistID, _, _ = strings.Cut(playlistID, PlaylistParamSeparator)

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

// VideoURL builds the watch URL of a video ID. A reference that is already
// a link is returned unchanged.
func VideoURL(reference string) string {
	if strings.ContainsAny(reference, "/:") {
		return reference
	}
	return fmt.Sprintf(YouTubeVideoURLTemplate, reference)
}
