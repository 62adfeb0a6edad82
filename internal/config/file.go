package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
)

// Locations
const (
	AppDirName     = "playlist-grab"
	ConfigFileName = "config.yaml"
	HistoryDBName  = "history.sqlite3"
)

var bitratePattern = regexp.MustCompile(`^[1-9][0-9]{1,2}k$`)

// File is the command line configuration. Values come from an optional YAML
// file, then PLAYLIST_GRAB_* environment variables, then the defaults below.
// cleanenv only applies a default to a zero field, so switches are phrased
// so that false is the default.
type File struct {
	OutputDir   string `yaml:"output_dir" env:"PLAYLIST_GRAB_OUTPUT_DIR" env-default:"." validate:"required"`
	Genre       string `yaml:"genre" env:"PLAYLIST_GRAB_GENRE"`
	Resolver    string `yaml:"resolver" env:"PLAYLIST_GRAB_RESOLVER" env-default:"binary" validate:"oneof=binary native"`
	Verbosity   int    `yaml:"verbosity" env:"PLAYLIST_GRAB_VERBOSITY" env-default:"1" validate:"min=0,max=2"`
	Attempts    int    `yaml:"attempts" env:"PLAYLIST_GRAB_ATTEMPTS" env-default:"5" validate:"min=1,max=10"`
	Bitrate     string `yaml:"bitrate" env:"PLAYLIST_GRAB_BITRATE" env-default:"192k" validate:"bitrate"`
	FFmpegPath  string `yaml:"ffmpeg_path" env:"PLAYLIST_GRAB_FFMPEG" env-default:"ffmpeg" validate:"required"`
	FFprobePath string `yaml:"ffprobe_path" env:"PLAYLIST_GRAB_FFPROBE" env-default:"ffprobe" validate:"required"`
	NoHistory   bool   `yaml:"no_history" env:"PLAYLIST_GRAB_NO_HISTORY"`
	HistoryPath string `yaml:"history_path" env:"PLAYLIST_GRAB_HISTORY_PATH"`
}

// ConfigDir returns ~/.config/playlist-grab
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// DefaultPath returns the default location of the configuration file
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the configuration from path. A missing file is not an error:
// the environment and defaults are used instead. An empty path means
// DefaultPath.
func Load(path string) (*File, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := &File{}
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, cfg)
	} else if errors.Is(statErr, os.ErrNotExist) {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = statErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (f *File) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("bitrate", func(fl validator.FieldLevel) bool {
		return bitratePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// expandPaths resolves ~ in path fields and fills in the history location
func (f *File) expandPaths() error {
	var err error
	if f.OutputDir, err = homedir.Expand(f.OutputDir); err != nil {
		return fmt.Errorf("invalid output_dir: %w", err)
	}

	if f.HistoryPath == "" {
		dir, err := ConfigDir()
		if err != nil {
			return err
		}
		f.HistoryPath = filepath.Join(dir, HistoryDBName)
	}
	if f.HistoryPath, err = homedir.Expand(f.HistoryPath); err != nil {
		return fmt.Errorf("invalid history_path: %w", err)
	}
	return nil
}
