// Package tagging writes ID3v2 metadata into finished mp3 files.
package tagging

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bogem/id3v2/v2"

	"github.com/ytget/playlist-grab/internal/model"
	"github.com/ytget/playlist-grab/pkg/logger"
)

// Frame IDs written besides the ones id3v2 has setters for
const (
	FrameRecordingTime = "TDRC"
	FrameBand          = "TPE2"
)

// Defaults
const (
	DefaultArtworkTimeout = 5 * time.Second
	CommentLanguage       = "eng"
	CommentDescription    = "desc"
	CoverDescription      = "Cover"
	MaxArtworkSize        = 10 << 20
)

var log = logger.Get("Tagging")

// TagFieldError reports a single field that could not be written. The
// remaining fields are still attempted.
type TagFieldError struct {
	Field string
	Err   error
}

func (e *TagFieldError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Field, e.Err)
}

func (e *TagFieldError) Unwrap() error { return e.Err }

// ID3Writer writes track metadata as ID3v2 frames, saving after every field
// so one bad field never costs the others.
type ID3Writer struct {
	client       *http.Client
	onFieldError func(*TagFieldError)
}

// Option configures an ID3Writer
type Option func(*ID3Writer)

// WithHTTPClient replaces the client used to fetch artwork
func WithHTTPClient(client *http.Client) Option {
	return func(w *ID3Writer) {
		if client != nil {
			w.client = client
		}
	}
}

// WithFieldErrorHandler is called for every field that fails
func WithFieldErrorHandler(fn func(*TagFieldError)) Option {
	return func(w *ID3Writer) {
		w.onFieldError = fn
	}
}

// NewID3Writer creates a tag writer
func NewID3Writer(opts ...Option) *ID3Writer {
	w := &ID3Writer{
		client: &http.Client{Timeout: DefaultArtworkTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type field struct {
	name  string
	value string
	apply func(tag *id3v2.Tag, value string) error
}

// WriteTags writes title, artist, album, comment, date, featured artist,
// artwork and genre into path. Empty values are skipped. An error is returned
// only if the file cannot be opened as a tag container at all.
func (w *ID3Writer) WriteTags(path string, track *model.Track, album, genre string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	if err := tag.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	fields := []field{
		{"title", track.Title, setText((*id3v2.Tag).SetTitle)},
		{"artist", track.Author, setText((*id3v2.Tag).SetArtist)},
		{"album", album, setText((*id3v2.Tag).SetAlbum)},
		{"comment", track.Comment, setComment},
		{"date", track.Date, setFrame(FrameRecordingTime)},
		{"featured", track.Featured, setFrame(FrameBand)},
		{"artwork", track.Artwork, w.setArtwork},
		{"genre", genre, setText((*id3v2.Tag).SetGenre)},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := writeField(path, f); err != nil {
			fieldErr := &TagFieldError{Field: f.name, Err: err}
			log.Debugf("Skipping tag field for %s: %v", path, fieldErr)
			if w.onFieldError != nil {
				w.onFieldError(fieldErr)
			}
		}
	}
	return nil
}

// writeField opens the file, applies one field and saves it
func writeField(path string, f field) (err error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tag.Close(); err == nil {
			err = cerr
		}
	}()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if err := f.apply(tag, f.value); err != nil {
		return err
	}
	return tag.Save()
}

func setText(set func(tag *id3v2.Tag, value string)) func(*id3v2.Tag, string) error {
	return func(tag *id3v2.Tag, value string) error {
		set(tag, value)
		return nil
	}
}

func setFrame(id string) func(*id3v2.Tag, string) error {
	return func(tag *id3v2.Tag, value string) error {
		tag.DeleteFrames(id)
		tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
		return nil
	}
}

func setComment(tag *id3v2.Tag, value string) error {
	tag.DeleteFrames(tag.CommonID("Comments"))
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    CommentLanguage,
		Description: CommentDescription,
		Text:        value,
	})
	return nil
}

func (w *ID3Writer) setArtwork(tag *id3v2.Tag, url string) error {
	data, mimeType, err := w.fetchArtwork(url)
	if err != nil {
		return err
	}

	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: CoverDescription,
		Picture:     data,
	})
	return nil
}

// fetchArtwork downloads the cover image and sniffs its MIME type
func (w *ID3Writer) fetchArtwork(url string) ([]byte, string, error) {
	resp, err := w.client.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("artwork request returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxArtworkSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read artwork: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("artwork is empty")
	}
	return data, http.DetectContentType(data), nil
}
