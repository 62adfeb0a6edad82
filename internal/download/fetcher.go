package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/playlist-grab/internal/model"
	"github.com/ytget/playlist-grab/internal/platform"
)

// DefaultFormat selects the best audio-only stream yt-dlp can find
const DefaultFormat = "bestaudio/best"

// YTDLPFetcher downloads single videos with the yt-dlp binary into a
// scratch directory and reports the metadata yt-dlp extracted.
type YTDLPFetcher struct {
	workDir string
	format  string
}

// NewYTDLPFetcher creates a fetcher that stores raw downloads in workDir
func NewYTDLPFetcher(workDir string) *YTDLPFetcher {
	return &YTDLPFetcher{workDir: workDir, format: DefaultFormat}
}

// WithFormat overrides the yt-dlp format selector
func (f *YTDLPFetcher) WithFormat(format string) *YTDLPFetcher {
	if format != "" {
		f.format = format
	}
	return f
}

// Fetch downloads the item at reference, which may be a video ID or URL
func (f *YTDLPFetcher) Fetch(ctx context.Context, reference string) (*model.RawItem, error) {
	dl := ytdlp.New().
		Format(f.format).
		NoPlaylist().
		ForceOverwrites().
		RestrictFilenames().
		PrintJSON().
		Output(filepath.Join(f.workDir, "%(id)s.%(ext)s"))

	result, err := dl.Run(ctx, platform.VideoURL(reference))
	if err != nil {
		return nil, fmt.Errorf("yt-dlp failed for %s: %w", reference, err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read yt-dlp output: %w", err)
	}
	return rawItemFromResult(reference, info)
}

// rawItemFromResult maps the first downloaded entry yt-dlp reported
func rawItemFromResult(reference string, info []*ytdlp.ExtractedInfo) (*model.RawItem, error) {
	if len(info) == 0 || info[0] == nil {
		return nil, errors.New("yt-dlp reported no downloaded media")
	}

	raw := rawItemFromInfo(info[0])
	raw.Reference = reference
	if raw.LocalPath == "" {
		return nil, errors.New("yt-dlp did not report the downloaded file")
	}
	return raw, nil
}

func rawItemFromInfo(info *ytdlp.ExtractedInfo) *model.RawItem {
	raw := &model.RawItem{
		ID:           info.ID,
		Title:        deref(info.Title),
		Uploader:     deref(info.Uploader),
		Description:  deref(info.Description),
		UploadDate:   deref(info.UploadDate),
		ThumbnailURL: deref(info.Thumbnail),
		LocalPath:    deref(info.Filename),
	}
	if len(info.Tags) > 0 {
		raw.Tags = append([]string(nil), info.Tags...)
	}
	return raw
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
