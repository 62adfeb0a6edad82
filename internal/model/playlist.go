package model

// Playlist is a resolved playlist: its title and the ordered item links.
// It is treated as immutable once the resolver returns it.
type Playlist struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Items []string `json:"items"`
}

// NewPlaylist creates a playlist instance
func NewPlaylist(id, title, url string, items []string) *Playlist {
	copied := make([]string, len(items))
	copy(copied, items)
	return &Playlist{
		ID:    id,
		Title: title,
		URL:   url,
		Items: copied,
	}
}

// Len returns the number of items in the playlist
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// IsEmpty reports whether the playlist has no items
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}
