package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"librero/cmd/cli/render"
	"librero/internal/models"
	"librero/internal/services"
)

type ListBooksCmd struct {
	Title  string `help:"Fuzzy-match titles"`
	Year   int    `help:"Only books published in this year"`
	Genre  string `help:"Only books whose genre contains this text"`
	Limit  int    `help:"Maximum number of books to load" default:"0"`
	Output string `short:"o" help:"Output format" enum:"table,json,yaml" default:"table"`
}

func (cmd *ListBooksCmd) Run(g *Globals) error {
	limit := cmd.Limit
	if limit <= 0 {
		limit = g.catalogLimit()
	}
	works := g.Catalog.Load(context.Background(), limit)
	works = services.FilterWorks(works, services.FilterOptions{
		Title: cmd.Title,
		Year:  cmd.Year,
		Genre: cmd.Genre,
	})

	switch cmd.Output {
	case "json":
		return cmd.printJSON(g, works)
	case "yaml":
		return cmd.printYAML(g, works)
	}
	fmt.Fprint(g.Out, g.Render.RenderBookTable(bookTableView("Albert Camus' Books", works)))
	return nil
}

func (cmd *ListBooksCmd) printJSON(g *Globals, works []models.Work) error {
	data, err := json.MarshalIndent(works, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(g.Out, string(data))
	return err
}

func (cmd *ListBooksCmd) printYAML(g *Globals, works []models.Work) error {
	enc := yaml.NewEncoder(g.Out)
	enc.SetIndent(2)
	if err := enc.Encode(works); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func bookTableView(title string, works []models.Work) render.BookTableView {
	items := make([]render.BookItem, len(works))
	for i, w := range works {
		items[i] = render.BookItem{Title: w.Title, Year: w.Year, Genre: w.Genre, Authors: w.Authors}
	}
	return render.BookTableView{Title: title, Items: items}
}
