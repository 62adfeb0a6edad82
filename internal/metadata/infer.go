// Package metadata turns the noisy title, uploader and description of a
// video into tag-ready track metadata. Everything here is a pure function of
// its input.
package metadata

import (
	"regexp"
	"strings"

	"github.com/ytget/playlist-grab/internal/model"
)

// featuredPatterns find "ft. NAME - ..." and "... - ... ft. NAME" at the end.
var featuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ft\.\s*(?:\()?(.*?)(?:\))?\s*-`),
	regexp.MustCompile(`-\s*(?:.*?)ft\.\s*(?:\()?(.*?)(?:\))?$`),
}

// filenameSeparators are replaced so a filename never escapes its directory.
var filenameSeparators = strings.NewReplacer("/", " ", "\\", " ")

// ExtractFeatured returns the featured artist named after an "ft." marker,
// or "" when s has none.
func ExtractFeatured(s string) string {
	for _, pattern := range featuredPatterns {
		if m := pattern.FindStringSubmatch(s); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// SplitAuthorTitle splits "author - title" on the first dash. Anything after
// the first dash stays in the title, dashes included.
func SplitAuthorTitle(s string) (author, title string, ok bool) {
	author, title, ok = strings.Cut(s, "-")
	if !ok {
		return "", s, false
	}
	return strings.TrimSpace(author), strings.TrimSpace(title), true
}

// FormatUploadDate turns YYYYMMDD into YYYY-MM-DD. Short or malformed input
// is sliced as far as it goes rather than rejected.
func FormatUploadDate(s string) string {
	if s == "" {
		return ""
	}
	return clip(s, 0, 4) + "-" + clip(s, 4, 6) + "-" + clip(s, 6, len(s))
}

func clip(s string, from, to int) string {
	from = min(from, len(s))
	to = min(max(to, from), len(s))
	return s[from:to]
}

// Filename derives the output file name (without extension). A title that
// already carries a dash is assumed to be author-qualified.
func Filename(title, author string) string {
	name := title
	if !strings.Contains(title, "-") {
		name = title + " - " + author
	}
	return filenameSeparators.Replace(name)
}

// Infer derives track metadata from the raw fields of one fetched item.
func Infer(raw *model.RawItem) model.Track {
	featured := ExtractFeatured(raw.Title)
	if featured == "" {
		featured = ExtractFeatured(raw.Uploader)
	}

	author, title, ok := SplitAuthorTitle(raw.Title)
	if !ok {
		author = raw.Uploader
		title = raw.Title
	}

	title = CleanTitle(title, featured)
	author = CleanTitle(author, featured)
	title = CleanRemix(title, author)

	if featured != "" {
		author = author + ", " + featured
	}

	var keywords []string
	if len(raw.Tags) > 0 {
		keywords = append(keywords, raw.Tags...)
	}

	return model.Track{
		Filename: Filename(title, author),
		Author:   author,
		Title:    title,
		Featured: featured,
		Artwork:  raw.ThumbnailURL,
		Keywords: keywords,
		Comment:  raw.Description,
		Date:     FormatUploadDate(raw.UploadDate),
		Genre:    PullGenre(title),
	}
}
