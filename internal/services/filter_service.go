package services

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"librero/internal/models"
)

// FilterOptions narrows a catalog listing. Zero values match everything.
type FilterOptions struct {
	Title string
	Year  int
	Genre string
}

// FilterWorks returns the works matching every set criterion, in input order.
// Titles match fuzzily: the query characters must appear in order, ignoring case.
func FilterWorks(works []models.Work, opts FilterOptions) []models.Work {
	title := strings.TrimSpace(opts.Title)
	genre := strings.ToLower(strings.TrimSpace(opts.Genre))

	matched := make([]models.Work, 0, len(works))
	for _, w := range works {
		if title != "" && !fuzzy.MatchFold(title, w.Title) {
			continue
		}
		if opts.Year != 0 && w.Year != opts.Year {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(w.Genre), genre) {
			continue
		}
		matched = append(matched, w)
	}
	return matched
}
