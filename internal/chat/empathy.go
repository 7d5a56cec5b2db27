package chat

import (
	"fmt"
	"strings"

	"github.com/mindease/go-mindease/internal/mood"
)

// moodMessages are the canned empathetic lines per resolved mood.
var moodMessages = map[mood.Label]string{
	mood.Happy:   "That's wonderful! Would you like to share what's making you smile?",
	mood.Sad:     "Remember, it's okay to feel sad. Take a deep breath; want to listen to some soothing music?",
	mood.Angry:   "You seem upset. Try a breathing exercise, or let some calm music help.",
	mood.Fear:    "It sounds like something is worrying you. You're safe here; let's slow down together.",
	mood.Neutral: "You seem calm. Let's keep that balance.",
}

// empathyFor composes the empathetic reply for a resolved mood.
// Blank input gets a listening prompt; otherwise the mood's canned line,
// falling back to a generic template for moods without one.
func empathyFor(text string, label mood.Label) string {
	if strings.TrimSpace(text) == "" && label == mood.Neutral {
		return "I'm listening. How are you feeling?"
	}
	if msg, ok := moodMessages[label]; ok {
		return msg
	}
	return fmt.Sprintf("I sense you might be feeling %s. I'm here with you.", label)
}
