// Package chat implements the interaction pipeline: classify emotion
// signals, resolve a mood, pick a music recommendation, assemble the reply,
// and record the interaction.
//
// Every collaborator failure fails open: a classifier error means "signal
// absent", a search error means "no recommendation", a synthesis error means
// "no audio". The user always gets a mood and a message.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mindease/go-mindease/internal/emotion"
	"github.com/mindease/go-mindease/internal/history"
	"github.com/mindease/go-mindease/internal/mood"
	"github.com/mindease/go-mindease/internal/recommend"
	"github.com/mindease/go-mindease/internal/session"
	"github.com/mindease/go-mindease/internal/spotify"
	"github.com/mindease/go-mindease/internal/tts"
)

// collaboratorTimeout bounds each external call. A collaborator that hangs
// past this is treated as signal absent rather than blocking the interaction.
const collaboratorTimeout = 20 * time.Second

// archiveHydrateLimit caps how many turns a returning session restores from
// the durable log.
const archiveHydrateLimit = 50

// Reply is the assembled result of one interaction.
type Reply struct {
	Mood           mood.Label
	Empathy        string
	Message        string
	Recommendation *spotify.Recommendation
	Gender         string // display-only, often empty
	Audio          []byte // synthesized speech, nil when unavailable
}

// WellnessReply is the result of one wellness-advice interaction.
type WellnessReply struct {
	Advice         []string
	Message        string
	Recommendation *spotify.Recommendation
}

// Service runs the interaction pipeline against its collaborators.
type Service struct {
	text     emotion.TextClassifier
	face     emotion.FaceClassifier
	searcher spotify.Searcher
	speech   tts.Synthesizer
	logger   history.Logger
	sessions session.Store

	// archive, when set, restores a returning session's conversation
	// history from the durable log after the session store has expired it.
	archive history.Reader

	// pick selects one recommendation from a non-empty result list.
	// Defaults to a uniform random pick.
	pick func(n int) int
}

// NewService creates the pipeline service. Any collaborator may be a
// disabled variant; the pipeline degrades per collaborator.
func NewService(
	text emotion.TextClassifier,
	face emotion.FaceClassifier,
	searcher spotify.Searcher,
	speech tts.Synthesizer,
	logger history.Logger,
	sessions session.Store,
) *Service {
	return &Service{
		text:     text,
		face:     face,
		searcher: searcher,
		speech:   speech,
		logger:   logger,
		sessions: sessions,
		pick:     rand.IntN,
	}
}

// WithArchive sets the durable-log reader used to re-hydrate conversation
// history for returning sessions. Returns the service for chaining.
func (s *Service) WithArchive(archive history.Reader) *Service {
	s.archive = archive
	return s
}

// Respond runs the full pipeline for one submitted form: text and an
// optional captured image. It never fails on collaborator errors; the reply
// always carries a mood and a message.
func (s *Service) Respond(ctx context.Context, sessionID, text string, image []byte) *Reply {
	textSignal := s.classifyText(ctx, text)
	faceSignal, gender := s.classifyFace(ctx, image)

	label := mood.Resolve(textSignal, faceSignal)
	empathy := empathyFor(text, label)

	rec := s.recommendFor(ctx, recommend.QueryFor(label))
	message := assembleMessage(label, empathy, rec, gender)

	reply := &Reply{
		Mood:           label,
		Empathy:        empathy,
		Message:        message,
		Recommendation: rec,
		Gender:         gender,
	}

	// Synthesis success or failure is orthogonal to the text reply.
	if audio, err := s.speech.Synthesize(ctx, message); err == nil {
		reply.Audio = audio
	}

	if err := s.sessions.Append(ctx, sessionID, session.Turn{User: text, Response: message}); err != nil {
		log.Printf("Warning: appending session turn: %v", err)
	}

	record := history.Record{
		Timestamp:    time.Now(),
		SessionID:    sessionID,
		UserText:     text,
		ResponseText: message,
		Mood:         string(label),
		Gender:       gender,
	}
	if err := s.logger.Append(ctx, record); err != nil {
		log.Printf("Warning: appending interaction record: %v", err)
	}

	return reply
}

// Wellness composes wellness advice for the given selections plus a music
// suggestion using the fixed calm query, independent of the selections.
func (s *Service) Wellness(ctx context.Context, flow, cramps, craving string) *WellnessReply {
	advice := recommend.WellnessAdvice(flow, cramps, craving)
	rec := s.recommendFor(ctx, recommend.WellnessQuery)

	var b strings.Builder
	for _, line := range advice {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nRelax with: ")
	if rec != nil {
		b.WriteString(fmt.Sprintf("%s (%s)", rec.Name, rec.URL))
	} else {
		b.WriteString("https://open.spotify.com")
	}

	return &WellnessReply{
		Advice:         advice,
		Message:        b.String(),
		Recommendation: rec,
	}
}

// ClearHistory discards the session's conversation history.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// History returns the session's conversation turns in order. When the
// session store has no turns (expired or restarted) and an archive is
// configured, the history is re-hydrated from the durable log.
func (s *Service) History(ctx context.Context, sessionID string) []session.Turn {
	turns, err := s.sessions.Turns(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: reading session history: %v", err)
		return nil
	}
	if len(turns) > 0 || s.archive == nil {
		return turns
	}

	records, err := s.archive.RecentForSession(ctx, sessionID, archiveHydrateLimit)
	if err != nil {
		log.Printf("Warning: restoring session history: %v", err)
		return nil
	}
	for _, r := range records {
		turns = append(turns, session.Turn{User: r.UserText, Response: r.ResponseText})
	}
	return turns
}

// classifyText returns the text signal, or nil when the collaborator fails
// (fail open).
func (s *Service) classifyText(ctx context.Context, text string) *mood.Signal {
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	signal, err := s.text.ClassifyText(ctx, text)
	if err != nil {
		if !errors.Is(err, emotion.ErrUnavailable) {
			log.Printf("Warning: text classification failed: %v", err)
		}
		return nil
	}
	return &signal
}

// classifyFace returns the face signal and gender estimate, or (nil, "")
// when no image was submitted or the collaborator fails.
func (s *Service) classifyFace(ctx context.Context, image []byte) (*mood.Signal, string) {
	if len(image) == 0 {
		return nil, ""
	}

	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	result, err := s.face.ClassifyImage(ctx, image)
	if err != nil {
		if !errors.Is(err, emotion.ErrUnavailable) && !errors.Is(err, emotion.ErrNoFace) {
			log.Printf("Warning: face classification failed: %v", err)
		}
		return nil, ""
	}
	return &result.Signal, result.Gender
}

// recommendFor searches playlists for the query and picks one result.
// Search failure or an empty result set yields nil (recommendation absent).
func (s *Service) recommendFor(ctx context.Context, query string) *spotify.Recommendation {
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	recs, err := s.searcher.SearchPlaylists(ctx, query, spotify.DefaultSearchLimit)
	if err != nil {
		log.Printf("Warning: playlist search failed: %v", err)
		return nil
	}
	if len(recs) == 0 {
		return nil
	}

	rec := recs[s.pick(len(recs))]
	return &rec
}

// assembleMessage composes the user-facing message: detected mood, the
// empathetic line, the recommendation (or a not-found notice), and the
// display-only gender estimate when present.
func assembleMessage(label mood.Label, empathy string, rec *spotify.Recommendation, gender string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Emotion: %s\n\n%s\n\n", label, empathy)

	if rec != nil {
		fmt.Fprintf(&b, "Playlist: %s (%s)", rec.Name, rec.URL)
	} else {
		b.WriteString("Playlist: not found")
	}

	if gender != "" {
		fmt.Fprintf(&b, "\n\nDetected gender: %s", gender)
	}

	return b.String()
}
