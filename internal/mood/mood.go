// Package mood defines the mood label vocabulary and the resolution rule
// that combines text- and face-derived emotion signals.
package mood

import "strings"

// Label is a normalized mood label from a small closed vocabulary.
type Label string

// Canonical mood labels.
const (
	Neutral  Label = "neutral"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Surprise Label = "surprise"
)

// synonyms maps classifier-specific label variants to canonical labels.
// Text models emit "joy"/"sadness"/"anger", face models emit
// "happy"/"sad"/"angry"/"surprised".
var synonyms = map[string]Label{
	"joy":       Happy,
	"sadness":   Sad,
	"anger":     Angry,
	"surprised": Surprise,
	"fearful":   Fear,
	"scared":    Fear,
}

// canonical is the set of labels accepted as-is.
var canonical = map[Label]bool{
	Neutral:  true,
	Happy:    true,
	Sad:      true,
	Angry:    true,
	Fear:     true,
	Surprise: true,
}

// Normalize lowercases and trims a raw label and maps synonyms onto the
// canonical vocabulary. Unknown or empty input normalizes to Neutral.
func Normalize(raw string) Label {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Neutral
	}
	if l, ok := synonyms[s]; ok {
		return l
	}
	if canonical[Label(s)] {
		return Label(s)
	}
	return Neutral
}

// Source identifies which classifier produced a signal.
type Source string

const (
	// SourceText marks a signal derived from free text.
	SourceText Source = "text"
	// SourceFace marks a signal derived from an image.
	SourceFace Source = "face"
)

// Signal is a single classifier's opinion about mood.
// Confidence is in [0,1] and is diagnostic only; it never
// participates in resolution.
type Signal struct {
	Label      Label
	Source     Source
	Confidence float64
}

// Resolve combines the text and face signals into one label.
//
// The text signal wins outright when present and non-neutral. Otherwise the
// face signal is used when present. With neither, the result is Neutral.
// This is strict precedence, not weighted fusion: confidence values are
// never blended.
func Resolve(text, face *Signal) Label {
	if text != nil && text.Label != Neutral {
		return text.Label
	}
	if face != nil {
		return face.Label
	}
	return Neutral
}
