package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// DefaultSearchLimit is the number of playlists requested per search.
const DefaultSearchLimit = 5

// Searcher finds playlists matching a mood query.
// An empty result slice is a valid, non-error outcome.
type Searcher interface {
	SearchPlaylists(ctx context.Context, query string, limit int) ([]Recommendation, error)
}

// Disabled is a Searcher with no backing Spotify client.
// It always reports no results.
type Disabled struct{}

// SearchPlaylists always returns an empty result set.
func (Disabled) SearchPlaylists(context.Context, string, int) ([]Recommendation, error) {
	return nil, nil
}

// SearchPlaylists searches the public catalog for playlists matching the
// mood query. The query is expanded to "<query> mood playlist" to bias
// results toward curated mood playlists.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	result, err := c.api.Search(ctx, fmt.Sprintf("%s mood playlist", query), spotify.SearchTypePlaylist, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching playlists: %w", err)
	}

	if result.Playlists == nil {
		return nil, nil
	}

	recs := make([]Recommendation, 0, len(result.Playlists.Playlists))
	for _, p := range result.Playlists.Playlists {
		rec := convertPlaylist(p)
		if rec.Name == "" {
			// The search API occasionally pads pages with empty entries.
			continue
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// convertPlaylist converts a Spotify SimplePlaylist to a Recommendation.
func convertPlaylist(p spotify.SimplePlaylist) Recommendation {
	rec := Recommendation{
		Name:  p.Name,
		URL:   p.ExternalURLs["spotify"],
		Owner: p.Owner.DisplayName,
	}

	if rec.URL == "" && p.ID != "" {
		rec.URL = "https://open.spotify.com/playlist/" + p.ID.String()
	}

	if len(p.Images) > 0 {
		rec.ImageURL = p.Images[0].URL
	}

	return rec
}

var (
	_ Searcher = (*Client)(nil)
	_ Searcher = Disabled{}
)
