package tagging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/playlist-grab/internal/model"
)

var audioFrames = []byte("fake mpeg audio frames, not an ID3 header")

var pngImage = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func newMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Song - Artist.mp3")
	require.NoError(t, os.WriteFile(path, audioFrames, 0o644))
	return path
}

func readTag(t *testing.T, path string) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tag.Close() })
	return tag
}

func artworkServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cover.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngImage)
	})
	mux.HandleFunc("/missing.jpg", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestWriteTags_AllFields(t *testing.T) {
	server := artworkServer(t)
	path := newMP3(t)

	track := &model.Track{
		Title:    "Song",
		Author:   "Artist, Bob",
		Featured: "Bob",
		Comment:  "Out now",
		Date:     "2023-01-15",
		Artwork:  server.URL + "/cover.jpg",
	}

	var fieldErrs []*TagFieldError
	writer := NewID3Writer(WithFieldErrorHandler(func(e *TagFieldError) { fieldErrs = append(fieldErrs, e) }))
	require.NoError(t, writer.WriteTags(path, track, "My Mix", "Deep House"))
	assert.Empty(t, fieldErrs)

	tag := readTag(t, path)
	assert.Equal(t, "Song", tag.Title())
	assert.Equal(t, "Artist, Bob", tag.Artist())
	assert.Equal(t, "My Mix", tag.Album())
	assert.Equal(t, "Deep House", tag.Genre())
	assert.Equal(t, "2023-01-15", tag.GetTextFrame(FrameRecordingTime).Text)
	assert.Equal(t, "Bob", tag.GetTextFrame(FrameBand).Text)

	comments := tag.GetFrames(tag.CommonID("Comments"))
	require.Len(t, comments, 1)
	comment, ok := comments[0].(id3v2.CommentFrame)
	require.True(t, ok)
	assert.Equal(t, "Out now", comment.Text)
	assert.Equal(t, CommentLanguage, comment.Language)
	assert.Equal(t, CommentDescription, comment.Description)

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	require.Len(t, pictures, 1)
	picture, ok := pictures[0].(id3v2.PictureFrame)
	require.True(t, ok)
	assert.Equal(t, "image/png", picture.MimeType)
	assert.Equal(t, byte(id3v2.PTFrontCover), picture.PictureType)
	assert.Equal(t, pngImage, picture.Picture)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(content, audioFrames), "audio data is kept after the tag")
}

func TestWriteTags_FieldFailureIsSwallowed(t *testing.T) {
	server := artworkServer(t)
	path := newMP3(t)

	var fieldErrs []*TagFieldError
	writer := NewID3Writer(WithFieldErrorHandler(func(e *TagFieldError) { fieldErrs = append(fieldErrs, e) }))

	track := &model.Track{Title: "Song", Author: "Artist", Artwork: server.URL + "/missing.jpg"}
	require.NoError(t, writer.WriteTags(path, track, "Mix", "Techno"))

	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "artwork", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Error(), "404")

	tag := readTag(t, path)
	assert.Equal(t, "Song", tag.Title())
	assert.Equal(t, "Techno", tag.Genre(), "fields after the failed one are still written")
	assert.Empty(t, tag.GetFrames(tag.CommonID("Attached picture")))
}

func TestWriteTags_SkipsEmptyValues(t *testing.T) {
	path := newMP3(t)

	require.NoError(t, NewID3Writer().WriteTags(path, &model.Track{Title: "Only Title"}, "", ""))

	tag := readTag(t, path)
	assert.Equal(t, "Only Title", tag.Title())
	assert.Empty(t, tag.Artist())
	assert.Empty(t, tag.Album())
	assert.Empty(t, tag.Genre())
	assert.Empty(t, tag.GetFrames(FrameBand))
}

func TestWriteTags_RewriteReplacesFrames(t *testing.T) {
	path := newMP3(t)
	writer := NewID3Writer()

	require.NoError(t, writer.WriteTags(path, &model.Track{Title: "First", Featured: "A", Comment: "one"}, "Mix", ""))
	require.NoError(t, writer.WriteTags(path, &model.Track{Title: "Second", Featured: "B", Comment: "two"}, "Mix", ""))

	tag := readTag(t, path)
	assert.Equal(t, "Second", tag.Title())
	assert.Len(t, tag.GetFrames(FrameBand), 1)
	assert.Equal(t, "B", tag.GetTextFrame(FrameBand).Text)
	assert.Len(t, tag.GetFrames(tag.CommonID("Comments")), 1)
}

func TestWriteTags_WholeFileFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	err := NewID3Writer().WriteTags(missing, &model.Track{Title: "x"}, "", "")
	assert.Error(t, err)
	assert.NoFileExists(t, missing)
}

func TestTagFieldErrorUnwrap(t *testing.T) {
	err := &TagFieldError{Field: "genre", Err: os.ErrPermission}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "failed to write genre: permission denied", err.Error())
}
