package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/playlist-grab/internal/config"
	"github.com/ytget/playlist-grab/pkg/logger"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// IO holds the command output streams
type IO struct {
	Out io.Writer
	Err io.Writer
}

// AppContext is shared by every subcommand
type AppContext struct {
	IO         IO
	ConfigPath string
	Verbosity  int
	Config     *config.File
}

// loadConfig reads the configuration once flags are parsed. An explicit
// --verbosity wins over the file.
func (a *AppContext) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Verbosity = a.Verbosity
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.Config = cfg

	if os.Getenv("LOG_LEVEL") == "" {
		logger.SetLevel(logger.LevelForVerbosity(cfg.Verbosity))
	}
	return nil
}

func newRootCommand(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playlist-grab",
		Short:   "Download a YouTube playlist as tagged mp3 files",
		Version: version,
		Long: "Downloads every video of a YouTube playlist, converts the audio to mp3, " +
			"derives artist and title from the noisy video metadata and writes ID3 tags. " +
			"The playlist title becomes the album.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
	}

	cmd.SetOut(app.IO.Out)
	cmd.SetErr(app.IO.Err)
	cmd.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Config file (default ~/.config/playlist-grab/config.yaml)")
	cmd.PersistentFlags().IntVarP(&app.Verbosity, "verbosity", "v", 1, "0 = quiet, 1 = report failures, 2 = report every stage")

	cmd.AddCommand(
		newDownloadCommand(app),
		newHistoryCommand(app),
		newInferCommand(app),
		newGenreCommand(app),
	)
	return cmd
}

func main() {
	app := &AppContext{IO: IO{Out: os.Stdout, Err: os.Stderr}}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(app).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(app.IO.Err, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
