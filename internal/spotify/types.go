package spotify

// Recommendation is one playlist returned by a mood search.
type Recommendation struct {
	Name     string
	URL      string // External open.spotify.com link
	ImageURL string // Cover image, may be empty
	Owner    string // Display name of the playlist owner, may be empty
}
