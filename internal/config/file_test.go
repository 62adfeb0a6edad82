package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "binary", cfg.Resolver)
	assert.Equal(t, 1, cfg.Verbosity)
	assert.Equal(t, 5, cfg.Attempts)
	assert.Equal(t, "192k", cfg.Bitrate)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.False(t, cfg.NoHistory)
	assert.Equal(t, HistoryDBName, filepath.Base(cfg.HistoryPath))
	assert.True(t, filepath.IsAbs(cfg.HistoryPath))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
output_dir: /srv/music
genre: Techno
resolver: native
verbosity: 2
attempts: 3
bitrate: 320k
no_history: true
history_path: /var/lib/grab/history.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/music", cfg.OutputDir)
	assert.Equal(t, "Techno", cfg.Genre)
	assert.Equal(t, "native", cfg.Resolver)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, 3, cfg.Attempts)
	assert.Equal(t, "320k", cfg.Bitrate)
	assert.True(t, cfg.NoHistory)
	assert.Equal(t, "/var/lib/grab/history.db", cfg.HistoryPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "resolver: native\nattempts: 3\n")
	t.Setenv("PLAYLIST_GRAB_RESOLVER", "binary")
	t.Setenv("PLAYLIST_GRAB_ATTEMPTS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "binary", cfg.Resolver)
	assert.Equal(t, 7, cfg.Attempts)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(writeConfig(t, "output_dir: ~/Music\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Music"), cfg.OutputDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown resolver", "resolver: curl\n", "Resolver"},
		{"verbosity too high", "verbosity: 3\n", "Verbosity"},
		{"too many attempts", "attempts: 11\n", "Attempts"},
		{"bad bitrate", "bitrate: loud\n", "Bitrate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "resolver: [unclosed\n"))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(path))
	assert.Equal(t, AppDirName, filepath.Base(filepath.Dir(path)))
}
