// Package transcode re-encodes fetched audio into mp3 with ffmpeg, driven
// through github.com/floostack/transcoder.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"

	"github.com/ytget/playlist-grab/pkg/logger"
)

// FFmpeg constants for re-encoding
const (
	AudioCodec     = "libmp3lame"
	AudioBitrate   = "192k"
	OutputFormat   = "mp3"
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

var log = logger.Get("Transcode")

// ProgressFunc receives the completed fraction of the running encode in [0, 100]
type ProgressFunc func(percent float64)

// Service converts audio files to mp3
type Service struct {
	ffmpegPath  string
	ffprobePath string
	bitrate     string
	onProgress  ProgressFunc
}

// Option configures a Service
type Option func(*Service)

// WithBinaries sets the ffmpeg and ffprobe executables. Empty values keep the
// defaults, which are looked up on PATH.
func WithBinaries(ffmpegPath, ffprobePath string) Option {
	return func(s *Service) {
		if ffmpegPath != "" {
			s.ffmpegPath = ffmpegPath
		}
		if ffprobePath != "" {
			s.ffprobePath = ffprobePath
		}
	}
}

// WithBitrate sets the target audio bitrate, e.g. "320k"
func WithBitrate(bitrate string) Option {
	return func(s *Service) {
		if bitrate != "" {
			s.bitrate = bitrate
		}
	}
}

// WithProgress sets a callback for encode progress
func WithProgress(fn ProgressFunc) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// NewService creates a new transcode service
func NewService(opts ...Option) *Service {
	s := &Service{
		ffmpegPath:  FFmpegCommand,
		ffprobePath: FFprobeCommand,
		bitrate:     AudioBitrate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildOptions returns the ffmpeg options used for every encode
func (s *Service) BuildOptions() *ffmpeg.Options {
	codec := AudioCodec
	bitrate := s.bitrate
	format := OutputFormat
	overwrite := true
	skipVideo := true

	return &ffmpeg.Options{
		AudioCodec:   &codec,
		AudioBitrate: &bitrate,
		OutputFormat: &format,
		Overwrite:    &overwrite,
		SkipVideo:    &skipVideo,
	}
}

// Reencode converts src into an mp3 at dst, overwriting dst. The source is
// removed once dst has been written; a partial dst is removed on failure.
func (s *Service) Reencode(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("input file does not exist: %w", err)
	}

	cfg := &ffmpeg.Config{
		ProgressEnabled: true,
		FfmpegBinPath:   s.ffmpegPath,
		FfprobeBinPath:  s.ffprobePath,
	}

	progress, err := ffmpeg.
		New(cfg).
		Input(src).
		Output(dst).
		WithContext(&ctx).
		Start(s.BuildOptions())
	if err != nil {
		removePartial(dst)
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.drain(progress)

	if err := ctx.Err(); err != nil {
		removePartial(dst)
		return fmt.Errorf("encode of %s interrupted: %w", src, err)
	}
	if err := verifyOutput(dst); err != nil {
		removePartial(dst)
		return err
	}

	if err := os.Remove(src); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Failed to remove source %s: %v", src, err)
	}
	return nil
}

// drain consumes the progress channel until ffmpeg exits
func (s *Service) drain(progress <-chan transcoder.Progress) {
	for p := range progress {
		if s.onProgress != nil {
			s.onProgress(p.GetProgress())
		}
	}
}

// verifyOutput checks that ffmpeg produced a non-empty file. The transcoder
// does not surface ffmpeg's exit status, so the output is the only signal.
func verifyOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("ffmpeg produced an empty file: %s", path)
	}
	return nil
}

func removePartial(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Debugf("Failed to remove partial output %s: %v", path, err)
	}
}
