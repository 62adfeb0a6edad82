package model

// RawItem is what the fetcher hands back for one playlist item: the
// descriptive fields of the video and the path of the downloaded audio.
type RawItem struct {
	Reference    string   `json:"reference"`
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Uploader     string   `json:"uploader"`
	Tags         []string `json:"tags,omitempty"`
	Description  string   `json:"description,omitempty"`
	UploadDate   string   `json:"upload_date,omitempty"` // YYYYMMDD
	ThumbnailURL string   `json:"thumbnail,omitempty"`
	LocalPath    string   `json:"local_path"`
}

// Track holds the inferred, tag-ready metadata for one item.
type Track struct {
	Filename string   `json:"filename"`
	Author   string   `json:"author"`
	Title    string   `json:"title"`
	Featured string   `json:"featured,omitempty"`
	Artwork  string   `json:"artwork,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Comment  string   `json:"comment,omitempty"`
	Date     string   `json:"date,omitempty"`  // YYYY-MM-DD
	Genre    string   `json:"genre,omitempty"` // advisory
}

// DisplayName returns "<author> - <title>", falling back to the filename
func (t *Track) DisplayName() string {
	if t == nil {
		return ""
	}
	switch {
	case t.Author != "" && t.Title != "":
		return t.Author + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Filename
	}
}
