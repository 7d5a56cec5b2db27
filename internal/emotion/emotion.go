// Package emotion provides clients for the external emotion-classification
// collaborators (text and face), plus disabled variants used when a
// collaborator is not configured.
package emotion

import (
	"context"
	"errors"

	"github.com/mindease/go-mindease/internal/mood"
)

// ErrUnavailable is returned by disabled classifiers. Callers treat it as
// "signal absent" and proceed without that signal.
var ErrUnavailable = errors.New("emotion classifier unavailable")

// ErrNoFace is returned when the face collaborator finds no detectable face.
// Callers treat it the same as ErrUnavailable.
var ErrNoFace = errors.New("no face detected")

// TextClassifier classifies the emotional tone of free text.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (mood.Signal, error)
}

// FaceResult is the output of the face collaborator. Gender is a
// display-only attribute: it never participates in mood resolution or
// recommendation selection.
type FaceResult struct {
	Signal mood.Signal
	Gender string
}

// FaceClassifier classifies the dominant emotion in a face image.
type FaceClassifier interface {
	ClassifyImage(ctx context.Context, image []byte) (FaceResult, error)
}

// DisabledText is a TextClassifier with no backing service.
type DisabledText struct{}

// ClassifyText always reports the signal as unavailable.
func (DisabledText) ClassifyText(context.Context, string) (mood.Signal, error) {
	return mood.Signal{}, ErrUnavailable
}

// DisabledFace is a FaceClassifier with no backing service.
type DisabledFace struct{}

// ClassifyImage always reports the signal as unavailable.
func (DisabledFace) ClassifyImage(context.Context, []byte) (FaceResult, error) {
	return FaceResult{}, ErrUnavailable
}

var (
	_ TextClassifier = DisabledText{}
	_ FaceClassifier = DisabledFace{}
)
