// internal/services/book_service.go

package services

import (
	"math/rand/v2"
	"strings"

	"librero/internal/models"
)

// Outcome tells which of the three recommendation results was produced.
type Outcome int

const (
	// OutcomeSelected means an unread work was picked.
	OutcomeSelected Outcome = iota
	// OutcomeExhausted means every catalog title is in the read list.
	OutcomeExhausted
	// OutcomeRejected means the read list names titles the catalog does not know.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Recommendation is the result of a single Recommend call.
// Work and Remaining are set for OutcomeSelected, Unknown for OutcomeRejected.
type Recommendation struct {
	Outcome   Outcome
	Work      models.Work
	Remaining int
	Unknown   []string
}

// UnknownTitlesError lets adapters that prefer errors surface a rejected read list.
type UnknownTitlesError struct {
	Titles []string
}

func (e *UnknownTitlesError) Error() string {
	return "unknown book title(s): " + strings.Join(e.Titles, ", ")
}

// Err returns an *UnknownTitlesError for rejected results and nil otherwise.
func (r Recommendation) Err() error {
	if r.Outcome != OutcomeRejected {
		return nil
	}
	return &UnknownTitlesError{Titles: r.Unknown}
}

// Rand is the random source used to pick among unread works.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Engine selects an unread work from a catalog snapshot. It keeps no state
// between calls and never modifies the catalog it is given.
type Engine struct {
	rng Rand
}

// NewEngine returns an engine drawing from rng, or from the shared
// math/rand/v2 generator when rng is nil.
func NewEngine(rng Rand) *Engine {
	if rng == nil {
		rng = globalRand{}
	}
	return &Engine{rng: rng}
}

// Recommend validates read against catalog and picks one unread work
// uniformly at random. Unknown titles are reported before exhaustion is
// considered, so an empty catalog rejects any non-empty read list.
func (e *Engine) Recommend(catalog []models.Work, read []string) Recommendation {
	known := titleSet(catalog)

	if unknown := unknownTitles(known, read); len(unknown) > 0 {
		return Recommendation{Outcome: OutcomeRejected, Unknown: unknown}
	}

	unread := unreadWorks(catalog, read)
	if len(unread) == 0 {
		return Recommendation{Outcome: OutcomeExhausted}
	}

	pick := unread[e.rng.IntN(len(unread))]
	return Recommendation{
		Outcome:   OutcomeSelected,
		Work:      pick,
		Remaining: len(catalog) - len(read) - 1,
	}
}

// IsExhausted reports whether no catalog work is left unread. Titles in read
// that the catalog does not know are ignored.
func (e *Engine) IsExhausted(catalog []models.Work, read []string) bool {
	return len(unreadWorks(catalog, read)) == 0
}

func titleSet(catalog []models.Work) map[string]struct{} {
	set := make(map[string]struct{}, len(catalog))
	for _, w := range catalog {
		set[w.Key()] = struct{}{}
	}
	return set
}

// unknownTitles keeps the caller's casing and first-seen order and reports
// each title once.
func unknownTitles(known map[string]struct{}, read []string) []string {
	var unknown []string
	reported := make(map[string]struct{})
	for _, title := range read {
		key := models.NormalizeTitle(title)
		if _, ok := known[key]; ok {
			continue
		}
		if _, dup := reported[key]; dup {
			continue
		}
		reported[key] = struct{}{}
		unknown = append(unknown, title)
	}
	return unknown
}

func unreadWorks(catalog []models.Work, read []string) []models.Work {
	readSet := make(map[string]struct{}, len(read))
	for _, title := range read {
		readSet[models.NormalizeTitle(title)] = struct{}{}
	}
	var unread []models.Work
	for _, w := range catalog {
		if _, ok := readSet[w.Key()]; !ok {
			unread = append(unread, w)
		}
	}
	return unread
}
