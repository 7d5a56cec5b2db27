// Package recommend maps resolved moods (and wellness selections) to
// music search queries and advice lines.
package recommend

import "github.com/mindease/go-mindease/internal/mood"

// DefaultQuery is the fallback search query for any mood not in the table.
const DefaultQuery = "relax"

// queryTable maps canonical mood labels to music search queries.
var queryTable = map[mood.Label]string{
	mood.Sad:     "healing",
	mood.Angry:   "calm",
	mood.Fear:    "peaceful",
	mood.Happy:   "happy",
	mood.Neutral: "focus",
}

// QueryFor returns the music search query for a mood label.
// The mapping is total: unmapped labels return DefaultQuery, never an error.
func QueryFor(label mood.Label) string {
	if q, ok := queryTable[label]; ok {
		return q
	}
	return DefaultQuery
}
