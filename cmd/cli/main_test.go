package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librero/cmd/cli/render"
	"librero/internal/database"
	"librero/internal/models"
	"librero/internal/services"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func newTestGlobals(t *testing.T, input string) (*Globals, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return &Globals{
		Catalog: services.NewCatalogService(nil, services.CatalogOptions{}),
		Engine:  services.NewEngine(firstRand{}),
		In:      strings.NewReader(input),
		Out:     buf,
		Render:  render.NewLipglossRenderer(buf, 120),
	}, buf
}

func allTitles() []string {
	var titles []string
	for _, w := range models.DefaultCatalog() {
		titles = append(titles, w.Title)
	}
	return titles
}

func TestRecommendCmd_Once(t *testing.T) {
	t.Run("prints one recommendation", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := RecommendCmd{Read: []string{"The Stranger", "The Plague"}, Once: true}
		require.NoError(t, cmd.Run(g))

		assert.Equal(t, "Next up: 'The Fall' (1956), a philosophical fiction. 4 more books to explore!\n", buf.String())
	})

	t.Run("prints re-read message when exhausted", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := RecommendCmd{Read: allTitles(), Once: true}
		require.NoError(t, cmd.Run(g))

		assert.Equal(t, services.ExhaustedMessage+"\n", buf.String())
	})
}

func TestRecommendCmd_UnknownTitle(t *testing.T) {
	g, buf := newTestGlobals(t, "\n")

	cmd := RecommendCmd{Read: []string{"Not A Real Book"}}
	err := cmd.Run(g)

	var unknown *services.UnknownTitlesError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"Not A Real Book"}, unknown.Titles)
	assert.Empty(t, buf.String())
}

func TestRecommendCmd_Interactive(t *testing.T) {
	t.Run("appends each pick to the read list", func(t *testing.T) {
		g, buf := newTestGlobals(t, "\n\nq\n")

		cmd := RecommendCmd{}
		require.NoError(t, cmd.Run(g))

		out := buf.String()
		assert.Equal(t, 3, strings.Count(out, promptText))
		assert.Contains(t, out, "Next up: 'The Stranger' (1942), a absurdist fiction. 6 more books to explore!")
		assert.Contains(t, out, "Books read so far: The Stranger\n")
		assert.Contains(t, out, "Books read so far: The Stranger, The Plague\n")
	})

	t.Run("stops when every book is read", func(t *testing.T) {
		g, buf := newTestGlobals(t, "\n\n\n")

		cmd := RecommendCmd{Read: allTitles()[1:]}
		require.NoError(t, cmd.Run(g))

		out := buf.String()
		assert.Contains(t, out, "Next up: 'The Stranger'")
		assert.Contains(t, out, services.ExhaustedMessage)
		assert.Equal(t, 2, strings.Count(out, promptText))
	})

	t.Run("quits on Q", func(t *testing.T) {
		g, buf := newTestGlobals(t, "Q\n")

		cmd := RecommendCmd{}
		require.NoError(t, cmd.Run(g))

		assert.NotContains(t, buf.String(), "Next up")
	})

	t.Run("ends on closed input", func(t *testing.T) {
		g, _ := newTestGlobals(t, "")

		cmd := RecommendCmd{}
		assert.NoError(t, cmd.Run(g))
	})
}

func TestListBooksCmd(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := ListBooksCmd{Output: "table"}
		require.NoError(t, cmd.Run(g))

		out := buf.String()
		assert.Contains(t, out, "Albert Camus' Books")
		for _, title := range allTitles() {
			assert.Contains(t, out, title)
		}
		assert.Contains(t, out, "1994")
	})

	t.Run("filters", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := ListBooksCmd{Genre: "essay", Output: "json"}
		require.NoError(t, cmd.Run(g))

		var works []models.Work
		require.NoError(t, json.Unmarshal(buf.Bytes(), &works))
		require.Len(t, works, 2)
		assert.Equal(t, "The Myth of Sisyphus", works[0].Title)
		assert.Equal(t, "The Rebel", works[1].Title)
	})

	t.Run("no match", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := ListBooksCmd{Year: 1800, Output: "table"}
		require.NoError(t, cmd.Run(g))

		assert.Equal(t, "No books match your criteria.\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		g, buf := newTestGlobals(t, "")

		cmd := ListBooksCmd{Limit: 1, Output: "yaml"}
		require.NoError(t, cmd.Run(g))

		assert.Contains(t, buf.String(), "- title: The Stranger\n")
		assert.Contains(t, buf.String(), "  year: 1942\n")
	})
}

func TestImportCmd(t *testing.T) {
	t.Run("requires a database", func(t *testing.T) {
		g, _ := newTestGlobals(t, "")

		cmd := ImportCmd{CSV: "books.csv"}
		assert.ErrorContains(t, cmd.Run(g), "requires a database")
	})

	t.Run("imports rows", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := filepath.Join(dir, "books.csv")
		require.NoError(t, os.WriteFile(csvPath, []byte("title,authors,publication_date\nNausea,Jean-Paul Sartre,1938\n"), 0o600))

		db, err := database.Open(filepath.Join(dir, "books.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		g, buf := newTestGlobals(t, "")
		g.Store = db

		cmd := ImportCmd{CSV: csvPath}
		require.NoError(t, cmd.Run(g))

		assert.Contains(t, buf.String(), "Imported 1 books")
		n, err := db.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestCLI_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("librero"), kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"recommend", "-r", "The Fall", "--read", "The Rebel, Second Edition", "--once"})
	require.NoError(t, err)

	assert.Equal(t, "recommend", ctx.Command())
	assert.Equal(t, []string{"The Fall", "The Rebel, Second Edition"}, cli.Recommend.Read)
	assert.True(t, cli.Recommend.Once)
	assert.Equal(t, "warn", cli.LogLevel)
}
