// Package app wires the concrete collaborators shared by the command line
// and the desktop shell.
package app

import (
	"fmt"
	"os"

	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/platform"
	"github.com/ytget/playlist-grab/internal/tagging"
	"github.com/ytget/playlist-grab/internal/transcode"
	"github.com/ytget/playlist-grab/pkg/logger"
)

var log = logger.Get("App")

// Options selects how the pipeline is built. Zero values mean defaults.
type Options struct {
	Resolver    string
	Attempts    int
	Verbosity   int
	Bitrate     string
	FFmpegPath  string
	FFprobePath string
	Progress    transcode.ProgressFunc
}

// Pipeline bundles a resolver and a download service over a scratch
// directory for raw downloads.
type Pipeline struct {
	Resolver *platform.PlaylistParserService
	Service  *download.Service
	WorkDir  string
}

// NewPipeline builds the yt-dlp, ffmpeg and ID3 backed pipeline
func NewPipeline(opts Options) (*Pipeline, error) {
	resolver, err := platform.NewResolver(opts.Resolver)
	if err != nil {
		return nil, err
	}

	workDir, err := platform.NewWorkDir()
	if err != nil {
		return nil, err
	}

	fetcher := download.NewYTDLPFetcher(workDir)
	encoder := transcode.NewService(
		transcode.WithBinaries(opts.FFmpegPath, opts.FFprobePath),
		transcode.WithBitrate(opts.Bitrate),
		transcode.WithProgress(opts.Progress),
	)
	tagger := tagging.NewID3Writer()

	service := download.NewService(fetcher, encoder, tagger,
		download.WithMaxAttempts(opts.Attempts),
		download.WithVerbosity(opts.Verbosity),
	)

	log.Debugf("Pipeline ready: resolver=%q attempts=%d work dir=%s", opts.Resolver, service.MaxAttempts(), workDir)
	return &Pipeline{Resolver: resolver, Service: service, WorkDir: workDir}, nil
}

// Close removes the scratch directory
func (p *Pipeline) Close() error {
	if p == nil || p.WorkDir == "" {
		return nil
	}
	if err := os.RemoveAll(p.WorkDir); err != nil {
		return fmt.Errorf("failed to remove work directory: %w", err)
	}
	return nil
}
