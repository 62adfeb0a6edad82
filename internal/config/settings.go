// Package config holds the configuration of both shells: the YAML/env file
// read by the command line and the preferences kept by the desktop app.
package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/playlist-grab/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir  = "download_directory"
	KeyGenre        = "genre_override"
	KeyVerbosity    = "verbosity"
	KeyLastPlaylist = "last_playlist_url"
	KeyResolver     = "playlist_resolver"
	KeyMaxAttempts  = "max_attempts"
)

// Default values
const (
	DefaultVerbosity   = 1
	MaxVerbosity       = 2
	DefaultResolver    = platform.ResolverBinary
	DefaultMaxAttempts = 5
	MaxAttempts        = 10
	FallbackDir        = "/tmp/downloads"
)

// Settings manages the desktop application preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetGenre returns the last genre override, "" meaning infer per track
func (s *Settings) GetGenre() string {
	return s.app.Preferences().String(KeyGenre)
}

// SetGenre stores the genre override
func (s *Settings) SetGenre(genre string) {
	s.app.Preferences().SetString(KeyGenre, genre)
}

// GetVerbosity returns the log verbosity between 0 and 2
func (s *Settings) GetVerbosity() int {
	return clamp(s.app.Preferences().IntWithFallback(KeyVerbosity, DefaultVerbosity), 0, MaxVerbosity)
}

// SetVerbosity sets the log verbosity, clamped to 0..2
func (s *Settings) SetVerbosity(v int) {
	s.app.Preferences().SetInt(KeyVerbosity, clamp(v, 0, MaxVerbosity))
}

// GetMaxAttempts returns how many times an item is tried
func (s *Settings) GetMaxAttempts() int {
	value := s.app.Preferences().Int(KeyMaxAttempts)
	if value <= 0 {
		s.SetMaxAttempts(DefaultMaxAttempts)
		return DefaultMaxAttempts
	}
	return value
}

// SetMaxAttempts sets the attempt limit, clamped to 1..10
func (s *Settings) SetMaxAttempts(n int) {
	s.app.Preferences().SetInt(KeyMaxAttempts, clamp(n, 1, MaxAttempts))
}

// GetLastPlaylistURL returns the playlist link entered last
func (s *Settings) GetLastPlaylistURL() string {
	return s.app.Preferences().String(KeyLastPlaylist)
}

// SetLastPlaylistURL remembers the playlist link
func (s *Settings) SetLastPlaylistURL(url string) {
	s.app.Preferences().SetString(KeyLastPlaylist, url)
}

// GetResolver returns the playlist resolver name
func (s *Settings) GetResolver() string {
	resolver := s.app.Preferences().String(KeyResolver)
	switch resolver {
	case platform.ResolverBinary, platform.ResolverNative:
		return resolver
	default:
		return DefaultResolver
	}
}

// SetResolver sets the playlist resolver; unknown names reset to the default
func (s *Settings) SetResolver(resolver string) {
	if resolver != platform.ResolverNative {
		resolver = DefaultResolver
	}
	s.app.Preferences().SetString(KeyResolver, resolver)
}

// GetResolverOptions returns the available resolvers
func (s *Settings) GetResolverOptions() []string {
	return []string{platform.ResolverBinary, platform.ResolverNative}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
