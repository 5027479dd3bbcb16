package core

import "strings"

// keywords.go collects the literal substring vocabularies used by the
// summarizer and the chat service. They are deliberately plain tables, not
// classifiers: no negation handling, no fuzzy matching. Adjust the lists,
// not the control flow.

// symptomKeywords flags patient messages that report a symptom. A match
// appends the raw message to the record's newly-reported-symptoms list.
var symptomKeywords = []string{
	"fever",
	"cough",
	"headache",
	"ache",
	"pain",
	"rash",
	"vomit",
	"nausea",
	"dizzy",
	"dizziness",
	"sore",
	"fatigue",
	"swelling",
	"bleeding",
}

// abnormalLabMarkers qualifies a lab result as worth surfacing.
var abnormalLabMarkers = []string{"high", "low", "elevated", "borderline"}

// DetectSymptom reports whether the message mentions any symptom keyword,
// case-insensitively.
func DetectSymptom(message string) bool {
	return containsAny(message, symptomKeywords)
}

// abnormalResult reports whether a lab result value reads as abnormal.
func abnormalResult(result string) bool {
	return containsAny(result, abnormalLabMarkers)
}

func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
