package models

import "strings"

// Work represents a single entry of the recommendation catalog.
type Work struct {
	Title   string `json:"title" yaml:"title"`
	Year    int    `json:"year,omitempty" yaml:"year,omitempty"`
	Genre   string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// Key returns the identity used when comparing titles.
func (w Work) Key() string {
	return NormalizeTitle(w.Title)
}

// NormalizeTitle lowercases a title so that titles differing only by case compare equal.
func NormalizeTitle(title string) string {
	return strings.ToLower(title)
}

// defaultCatalog is the bootstrap list served whenever no store is available.
var defaultCatalog = [...]Work{
	{Title: "The Stranger", Year: 1942, Genre: "Absurdist fiction", Authors: DefaultAuthor},
	{Title: "The Plague", Year: 1947, Genre: "Philosophical novel", Authors: DefaultAuthor},
	{Title: "The Fall", Year: 1956, Genre: "Philosophical fiction", Authors: DefaultAuthor},
	{Title: "The Myth of Sisyphus", Year: 1942, Genre: "Philosophical essay", Authors: DefaultAuthor},
	{Title: "The Rebel", Year: 1951, Genre: "Philosophical essay", Authors: DefaultAuthor},
	{Title: "The First Man", Year: 1994, Genre: "Autobiographical novel", Authors: DefaultAuthor},
	{Title: "A Happy Death", Year: 1971, Genre: "Philosophical fiction", Authors: DefaultAuthor},
}

// DefaultCatalog returns a fresh copy of the built-in catalog.
func DefaultCatalog() []Work {
	works := make([]Work, len(defaultCatalog))
	copy(works, defaultCatalog[:])
	return works
}

// DefaultCatalogN returns at most limit entries of the built-in catalog.
// A non-positive limit yields an empty slice.
func DefaultCatalogN(limit int) []Work {
	if limit <= 0 {
		return []Work{}
	}
	works := DefaultCatalog()
	if limit < len(works) {
		works = works[:limit]
	}
	return works
}

// LookupDefault finds a built-in entry by title, ignoring case.
func LookupDefault(title string) (Work, bool) {
	key := NormalizeTitle(title)
	for _, w := range defaultCatalog {
		if w.Key() == key {
			return w, true
		}
	}
	return Work{}, false
}

// Dedupe drops entries whose title repeats an earlier one case-insensitively,
// as well as entries with a blank title. Order is preserved.
func Dedupe(works []Work) []Work {
	seen := make(map[string]struct{}, len(works))
	out := make([]Work, 0, len(works))
	for _, w := range works {
		if strings.TrimSpace(w.Title) == "" {
			continue
		}
		key := w.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}
