package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlatPlaylist(t *testing.T) {
	output := `{
		"id": "PLmix",
		"title": "My Mix",
		"_type": "playlist",
		"entries": [
			{"id": "aaaaaaaaaaa", "url": "https://www.youtube.com/watch?v=aaaaaaaaaaa", "title": "A - One"},
			{"id": "bbbbbbbbbbb", "title": "B - Two"},
			{"title": "[Private video]"}
		]
	}`

	playlist, err := parseFlatPlaylist(output, "PLignored", "https://www.youtube.com/watch?v=x&list=PLmix")
	require.NoError(t, err)

	assert.Equal(t, "PLmix", playlist.ID)
	assert.Equal(t, "My Mix", playlist.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=x&list=PLmix", playlist.URL)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=bbbbbbbbbbb",
	}, playlist.Items)
}

func TestParseFlatPlaylist_MissingTitle(t *testing.T) {
	output := `{"entries": [{"id": "a", "title": "Only Song"}]}`

	playlist, err := parseFlatPlaylist(output, "PL1", "")
	require.NoError(t, err)
	assert.Equal(t, "PL1", playlist.ID)
	assert.Equal(t, "Only Song"+PlaylistSuffix, playlist.Title)
}

func TestParseFlatPlaylist_Empty(t *testing.T) {
	playlist, err := parseFlatPlaylist(`{"id": "PL1", "title": "Nothing", "entries": []}`, "PL1", "")
	require.NoError(t, err)
	assert.True(t, playlist.IsEmpty())
}

func TestParseFlatPlaylist_InvalidJSON(t *testing.T) {
	_, err := parseFlatPlaylist("ERROR: not json", "PL1", "")
	assert.Error(t, err)
}
