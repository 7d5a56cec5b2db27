// Package tts provides a client for the external speech-synthesis
// collaborator. Synthesis failure is always non-fatal to callers: the
// pipeline ships a text reply whether or not audio is available.
package tts

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by the disabled synthesizer.
var ErrUnavailable = errors.New("speech synthesis unavailable")

// DefaultRate is the speech rate in words per minute.
const DefaultRate = 165

// Synthesizer converts text into playable audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Disabled is a Synthesizer with no backing service.
type Disabled struct{}

// Synthesize always reports synthesis as unavailable.
func (Disabled) Synthesize(context.Context, string) ([]byte, error) {
	return nil, ErrUnavailable
}

var _ Synthesizer = Disabled{}
