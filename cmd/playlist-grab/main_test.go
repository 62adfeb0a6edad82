package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/playlist-grab/internal/download"
	"github.com/ytget/playlist-grab/internal/history"
	"github.com/ytget/playlist-grab/internal/model"
)

// execute runs the root command against a config file in a temp dir.
func execute(t *testing.T, configBody string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if configBody != "" {
		require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0o644))
	}

	var out, errOut bytes.Buffer
	app := &AppContext{IO: IO{Out: &out, Err: &errOut}}
	cmd := newRootCommand(app)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenreCommand(t *testing.T) {
	out, err := execute(t, "", "genre", "Deep", "House", "Summer", "2024")
	require.NoError(t, err)
	assert.Equal(t, "Deep House\n", out)

	out, err = execute(t, "", "genre", "My Mix")
	require.NoError(t, err)
	assert.Equal(t, "No known genre found\n", out)

	_, err = execute(t, "", "genre")
	assert.Error(t, err)
}

func TestGenreCommand_List(t *testing.T) {
	out, err := execute(t, "", "genre", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Deep House\n")
}

func TestInferCommand(t *testing.T) {
	out, err := execute(t, "", "infer", "Artist - Song (Official Video)", "--date", "20230115")
	require.NoError(t, err)

	assert.Contains(t, out, "Artist")
	assert.Contains(t, out, "Song")
	assert.Contains(t, out, "2023-01-15")
	assert.Contains(t, out, "Song - Artist.mp3")
	assert.NotContains(t, out, "Official")
}

func TestInferCommand_RequiresTitle(t *testing.T) {
	_, err := execute(t, "", "infer")
	assert.Error(t, err)
}

func TestVerbosityFlagIsValidated(t *testing.T) {
	_, err := execute(t, "", "--verbosity", "7", "genre", "--list")
	assert.Error(t, err)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := execute(t, "attempts: 42\n", "genre", "--list")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.sqlite3")

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	entry, err := history.FromResult("batch-1", "My Mix", download.Result{
		Index:     0,
		Reference: "abc",
		Track:     &model.Track{Author: "Artist", Title: "Song"},
		Elapsed:   65 * time.Second,
		Attempts:  1,
		State:     model.ItemStateDone,
	})
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), &entry))
	require.NoError(t, store.Close())

	out, err := execute(t, "history_path: "+dbPath+"\n", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Artist - Song")
	assert.Contains(t, out, "01:05")

	out, err = execute(t, "history_path: "+dbPath+"\n", "history", "--batch", "missing")
	require.NoError(t, err)
	assert.Equal(t, "No history yet\n", out)
}
