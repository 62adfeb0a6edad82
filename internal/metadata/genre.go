package metadata

import "strings"

// Genres is searched in order and the first name found in a title wins.
// Reordering it changes which genre ambiguous titles get.
var Genres = []string{
	"Deep House",
	"Electro House",
	"Future House",
	"Progressive House",
	"Tech House",
	"Tropical House",
	"Techno",
	"Detroit Techno",
	"Minimal Techno",
	"Dub Techno",
	"Industrial Techno",
	"Drum and Bass",
	"Liquid Drum and Bass",
	"Jump-Up",
	"Neurofunk",
	"Jungle",
	"Dubstep",
	"Brostep",
	"Chillstep",
	"Trance",
	"Progressive Trance",
	"Psytrance (Psychedelic Trance)",
	"Vocal Trance",
	"Uplifting Trance",
	"Electro",
	"Electroclash",
	"Electropop",
	"EDM",
	"Big Room",
	"Dance-Pop",
	"Ambient",
	"Ambient House",
	"Dark Ambient",
	"Drone Music",
	"Breakbeat",
	"Nu Skool Breaks",
	"Big Beat",
	"Breakcore",
	"Hardcore",
	"Happy Hardcore",
	"Gabber",
	"UK Hardcore",
	"Industrial",
	"EBM",
	"Aggrotech",
	"IDM",
	"Glitch",
	"Drill 'n' Bass",
	"Trip-Hop",
	"Downtempo",
	"Glitch Hop",
	"Moombahton",
	"Future Bass",
	"Grime",
	"Trap",
	"Hybrid Trap",
	"Synthwave",
	"Vaporwave",
	"Outrun",
	"Chillwave",
	"House",
	"DnB",
	"Drum & Bass",
	"Drum & base",
}

// PullGenre returns the first genre in Genres contained in s, compared
// case-insensitively, or "" when nothing matches.
func PullGenre(s string) string {
	lower := strings.ToLower(s)
	for _, genre := range Genres {
		if strings.Contains(lower, strings.ToLower(genre)) {
			return genre
		}
	}
	return ""
}
