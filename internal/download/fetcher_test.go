package download

import (
	"reflect"
	"testing"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/playlist-grab/internal/model"
)

func strPtr(s string) *string { return &s }

func TestRawItemFromInfo(t *testing.T) {
	tests := []struct {
		name     string
		info     *ytdlp.ExtractedInfo
		expected *model.RawItem
	}{
		{
			name: "all fields",
			info: &ytdlp.ExtractedInfo{
				ID:          "dQw4w9WgXcQ",
				Title:       strPtr("Artist - Song (Official Video)"),
				Uploader:    strPtr("ArtistVEVO"),
				Description: strPtr("Listen now"),
				UploadDate:  strPtr("20230115"),
				Thumbnail:   strPtr("https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"),
				Filename:    strPtr("/tmp/work/dQw4w9WgXcQ.webm"),
				Tags:        []string{"pop", "dance"},
			},
			expected: &model.RawItem{
				ID:           "dQw4w9WgXcQ",
				Title:        "Artist - Song (Official Video)",
				Uploader:     "ArtistVEVO",
				Description:  "Listen now",
				UploadDate:   "20230115",
				ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
				LocalPath:    "/tmp/work/dQw4w9WgXcQ.webm",
				Tags:         []string{"pop", "dance"},
			},
		},
		{
			name:     "all fields nil",
			info:     &ytdlp.ExtractedInfo{},
			expected: &model.RawItem{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := rawItemFromInfo(test.info)
			if !reflect.DeepEqual(result, test.expected) {
				t.Errorf("rawItemFromInfo() = %+v, expected %+v", result, test.expected)
			}
		})
	}
}

func TestRawItemFromInfo_CopiesTags(t *testing.T) {
	info := &ytdlp.ExtractedInfo{Tags: []string{"pop"}}

	raw := rawItemFromInfo(info)
	info.Tags[0] = "changed"

	if raw.Tags[0] != "pop" {
		t.Errorf("Tags[0] = %q, expected %q", raw.Tags[0], "pop")
	}
}

func TestRawItemFromResult(t *testing.T) {
	raw, err := rawItemFromResult("ref", []*ytdlp.ExtractedInfo{
		{ID: "id", Title: strPtr("Song"), Filename: strPtr("/tmp/work/id.webm")},
	})
	if err != nil {
		t.Fatalf("rawItemFromResult() error = %v", err)
	}
	if raw.Reference != "ref" {
		t.Errorf("Reference = %q, expected %q", raw.Reference, "ref")
	}
	if raw.LocalPath != "/tmp/work/id.webm" {
		t.Errorf("LocalPath = %q, expected %q", raw.LocalPath, "/tmp/work/id.webm")
	}
}

func TestRawItemFromResult_Errors(t *testing.T) {
	tests := []struct {
		name string
		info []*ytdlp.ExtractedInfo
	}{
		{"no entries", nil},
		{"nil entry", []*ytdlp.ExtractedInfo{nil}},
		{"no local path", []*ytdlp.ExtractedInfo{{ID: "id", Title: strPtr("Song")}}},
		{"empty local path", []*ytdlp.ExtractedInfo{{ID: "id", Filename: strPtr("")}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw, err := rawItemFromResult("ref", test.info)
			if err == nil {
				t.Errorf("rawItemFromResult() = %+v, expected an error", raw)
			}
			if raw != nil {
				t.Errorf("rawItemFromResult() item = %+v, expected nil", raw)
			}
		})
	}
}

func TestNewYTDLPFetcher(t *testing.T) {
	fetcher := NewYTDLPFetcher("/tmp/work")
	if fetcher.format != DefaultFormat {
		t.Errorf("format = %q, expected %q", fetcher.format, DefaultFormat)
	}

	fetcher.WithFormat("")
	if fetcher.format != DefaultFormat {
		t.Errorf("WithFormat(\"\") changed format to %q", fetcher.format)
	}

	fetcher.WithFormat("140")
	if fetcher.format != "140" {
		t.Errorf("format = %q, expected %q", fetcher.format, "140")
	}
}
