package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/playlist-grab/internal/app"
	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/history"
	"github.com/ytget/playlist-grab/internal/platform"
	"github.com/ytget/playlist-grab/pkg/logger"
)

var log = logger.Get("CLI")

type downloadOptions struct {
	OutputDir string
	Genre     string
	Resolver  string
	Attempts  int
	Bitrate   string
	NoHistory bool
	Mkdir     bool
}

func newDownloadCommand(appCtx *AppContext) *cobra.Command {
	opts := downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download <playlist-url>",
		Short: "Download, convert and tag every item of a playlist",
		Long: "Resolves the playlist, then downloads its items one at a time. Each item is tried " +
			"up to --attempts times from scratch before it is skipped. Unless --genre is given, " +
			"a genre found in the playlist title is written to every track; pass --genre \"\" to " +
			"infer the genre per track instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appCtx.Config
			flags := cmd.Flags()
			if !flags.Changed("output") {
				opts.OutputDir = cfg.OutputDir
			}
			if !flags.Changed("resolver") {
				opts.Resolver = cfg.Resolver
			}
			if !flags.Changed("attempts") {
				opts.Attempts = cfg.Attempts
			}
			if !flags.Changed("bitrate") {
				opts.Bitrate = cfg.Bitrate
			}
			if !flags.Changed("no-history") {
				opts.NoHistory = cfg.NoHistory
			}
			genreSet := flags.Changed("genre")
			if !genreSet && cfg.Genre != "" {
				opts.Genre, genreSet = cfg.Genre, true
			}

			outputDir, err := platform.ExpandPath(opts.OutputDir)
			if err != nil {
				return err
			}
			if opts.Mkdir {
				if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
					return fmt.Errorf("failed to create %s: %w", outputDir, err)
				}
			}

			return runDownload(cmd.Context(), appCtx, args[0], outputDir, opts, genreSet)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", ".", "Directory the mp3 files are written to")
	cmd.Flags().StringVarP(&opts.Genre, "genre", "g", "", "Genre written to every track (default: guessed from the playlist title)")
	cmd.Flags().StringVar(&opts.Resolver, "resolver", platform.ResolverBinary, "Playlist resolver: binary (yt-dlp) or native")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", download.DefaultMaxAttempts, "Attempts per item before it is skipped")
	cmd.Flags().StringVar(&opts.Bitrate, "bitrate", "192k", "mp3 bitrate")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record the batch in the history database")
	cmd.Flags().BoolVar(&opts.Mkdir, "mkdir", false, "Create the output directory if it is missing")
	return cmd
}

func runDownload(ctx context.Context, appCtx *AppContext, url, outputDir string, opts downloadOptions, genreSet bool) error {
	out := appCtx.IO.Out
	cfg := appCtx.Config

	pipeline, err := app.NewPipeline(app.Options{
		Resolver:    opts.Resolver,
		Attempts:    opts.Attempts,
		Verbosity:   cfg.Verbosity,
		Bitrate:     opts.Bitrate,
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			log.Warnf("%v", err)
		}
	}()

	playlist, err := pipeline.Resolver.Resolve(ctx, url)
	if err != nil {
		return err
	}

	genre := opts.Genre
	if !genreSet {
		genre = app.SuggestGenre(playlist)
	}
	describeGenre := genre
	if describeGenre == "" {
		describeGenre = "per track"
	}
	color.New(color.Bold).Fprintf(out, "%s: %d tracks, genre %s\n", playlist.Title, playlist.Len(), describeGenre)

	var batch *download.Batch
	observer := download.ObserverFunc(func(item download.Item, cp download.Checkpoint) {
		if cp == download.CheckpointFetchStarted && item.Attempt == 1 {
			fmt.Fprintln(out, app.StartLine(item.Index, batch.Progress()))
		}
	})

	batch, err = pipeline.Service.DownloadPlaylist(playlist, outputDir, genre, observer)
	if err != nil {
		return err
	}

	recorder := openHistory(cfg.HistoryPath, opts.NoHistory)
	defer recorder.Close()

	for res := range batch.All(ctx) {
		printResult(out, res)
		recorder.record(ctx, batch.ID(), playlist.Title, res)
	}

	progress := batch.Progress()
	fmt.Fprintln(out, app.SummaryLine(progress))
	if !batch.Done() {
		color.New(color.FgYellow).Fprintf(out, "Interrupted after %d of %d tracks\n", progress.Processed(), progress.Total)
		return ctx.Err()
	}
	return nil
}

func printResult(out io.Writer, res download.Result) {
	if res.Skipped() {
		color.New(color.FgYellow).Fprintln(out, app.ResultLine(res))
		return
	}

	size := ""
	if info, err := os.Stat(res.OutputPath); err == nil {
		size = ", " + humanize.Bytes(uint64(info.Size()))
	}
	color.New(color.FgGreen).Fprintf(out, "%s%s\n", app.ResultLine(res), size)
}

// historyRecorder writes results to the history store. A store that failed
// to open is logged once and then ignored.
type historyRecorder struct {
	store *history.Store
}

func openHistory(path string, disabled bool) *historyRecorder {
	if disabled {
		return &historyRecorder{}
	}
	store, err := history.Open(path)
	if err != nil {
		log.Warnf("History disabled: %v", err)
		return &historyRecorder{}
	}
	return &historyRecorder{store: store}
}

func (r *historyRecorder) record(ctx context.Context, batchID, title string, res download.Result) {
	if r.store == nil {
		return
	}
	entry, err := history.FromResult(batchID, title, res)
	if err != nil {
		log.Warnf("Not recording %s: %v", res.Reference, err)
		return
	}
	if err := r.store.Record(context.WithoutCancel(ctx), &entry); err != nil {
		log.Warnf("Failed to record %s: %v", res.Reference, err)
	}
}

func (r *historyRecorder) Close() {
	if err := r.store.Close(); err != nil {
		log.Warnf("Failed to close history: %v", err)
	}
}
