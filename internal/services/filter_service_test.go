package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"librero/internal/models"
)

func titlesOf(works []models.Work) []string {
	titles := make([]string, len(works))
	for i, w := range works {
		titles[i] = w.Title
	}
	return titles
}

func TestFilterWorks(t *testing.T) {
	catalog := models.DefaultCatalog()

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{
			name: "no criteria",
			opts: FilterOptions{},
			want: titlesOf(catalog),
		},
		{
			name: "fuzzy title",
			opts: FilterOptions{Title: "plg"},
			want: []string{"The Plague"},
		},
		{
			name: "title ignores case",
			opts: FilterOptions{Title: "SISYPHUS"},
			want: []string{"The Myth of Sisyphus"},
		},
		{
			name: "year",
			opts: FilterOptions{Year: 1942},
			want: []string{"The Stranger", "The Myth of Sisyphus"},
		},
		{
			name: "genre substring",
			opts: FilterOptions{Genre: "essay"},
			want: []string{"The Myth of Sisyphus", "The Rebel"},
		},
		{
			name: "all criteria combined",
			opts: FilterOptions{Title: "the", Year: 1942, Genre: "fiction"},
			want: []string{"The Stranger"},
		},
		{
			name: "no match",
			opts: FilterOptions{Year: 2001},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titlesOf(FilterWorks(catalog, tt.opts)))
		})
	}
}
