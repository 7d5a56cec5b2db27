package recommend

import "strings"

// WellnessQuery is the music query always suggested alongside wellness
// advice, independent of the user's selections.
const WellnessQuery = "calm"

// Wellness form categories.
const (
	CategoryFlow    = "flow"
	CategoryCramps  = "cramps"
	CategoryCraving = "craving"
)

// wellnessRules maps (category, normalized value) to an advice line.
// Values absent from the table contribute no line.
var wellnessRules = map[string]map[string]string{
	CategoryFlow: {
		"bright red": "Your flow looks healthy. Keep hydrated and eat iron-rich foods.",
		"normal red": "Your flow looks healthy. Keep hydrated and eat iron-rich foods.",
		"brown":      "Old blood flow. Try warm water, ginger tea, and light walks.",
		"dark":       "Old blood flow. Try warm water, ginger tea, and light walks.",
		"pink":       "Possible low iron. Eat spinach, lentils, and beetroot.",
		"pale":       "Possible low iron. Eat spinach, lentils, and beetroot.",
	},
	CategoryCramps: {
		"severe": "Severe cramps? Use a heat pad, magnesium-rich foods, and deep breathing.",
	},
	CategoryCraving: {
		"chocolate": "Craving sweets? Choose dark chocolate or dates instead.",
		"salty":     "Add electrolytes like coconut water.",
	},
}

// WellnessAdvice returns advice lines for the given selections in fixed
// order: flow tip, cramp tip, craving tip. Selections with no matching rule
// produce no line, so the result may be empty.
func WellnessAdvice(flow, cramps, craving string) []string {
	var advice []string

	categories := []struct {
		category string
		value    string
	}{
		{CategoryFlow, flow},
		{CategoryCramps, cramps},
		{CategoryCraving, craving},
	}

	for _, sel := range categories {
		value := strings.ToLower(strings.TrimSpace(sel.value))
		if line, ok := wellnessRules[sel.category][value]; ok {
			advice = append(advice, line)
		}
	}

	return advice
}
