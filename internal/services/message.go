package services

import (
	"fmt"
	"strings"
)

// Fixed texts shared by the HTTP and CLI adapters.
const (
	NoRecommendation = "No recommendation available"
	ExhaustedMessage = "You've read all of Camus' major works! Time for a re-read."
)

// FormatMessage renders the human-readable summary of a recommendation.
// Remaining counts the works still unread after this pick.
func FormatMessage(r Recommendation) string {
	switch r.Outcome {
	case OutcomeExhausted:
		return ExhaustedMessage
	case OutcomeRejected:
		return "Unknown book title(s): " + strings.Join(r.Unknown, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Next up: '%s'", r.Work.Title)
	if r.Work.Year != 0 {
		fmt.Fprintf(&b, " (%d)", r.Work.Year)
	}
	if r.Work.Genre != "" {
		fmt.Fprintf(&b, ", a %s", strings.ToLower(r.Work.Genre))
	}
	fmt.Fprintf(&b, ". %d more books to explore!", r.Remaining)
	return b.String()
}

// RecommendationTitle is the value adapters report as "the recommendation":
// the picked title, or NoRecommendation when nothing was picked.
func RecommendationTitle(r Recommendation) string {
	if r.Outcome != OutcomeSelected {
		return NoRecommendation
	}
	return r.Work.Title
}
