package render

import "strconv"

// Renderer turns CLI views into terminal text.
type Renderer interface {
	RenderBookTable(view BookTableView) string
	RenderRecommendation(view RecommendationView) string
}

// BookTableView is a titled list of books.
type BookTableView struct {
	Title string
	Items []BookItem
}

// BookItem is one table row.
type BookItem struct {
	Title   string
	Year    int
	Genre   string
	Authors string
}

// YearText renders an unknown year as a dash.
func (b BookItem) YearText() string {
	if b.Year == 0 {
		return "-"
	}
	return strconv.Itoa(b.Year)
}

func (v BookTableView) IsEmpty() bool {
	return len(v.Items) == 0
}

// RecommendationView is one pick of the interactive loop.
type RecommendationView struct {
	Message string
	Read    []string
}
