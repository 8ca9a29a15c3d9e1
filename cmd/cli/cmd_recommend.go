package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"librero/internal/services"
)

const promptText = "Press Enter for a recommendation (or 'q' to quit): "

type RecommendCmd struct {
	Read []string `short:"r" name:"read" help:"A book you've already read (repeatable)" sep:"none"`
	Once bool     `help:"Print a single recommendation without prompting"`
}

func (cmd *RecommendCmd) Run(g *Globals) error {
	ctx := context.Background()
	catalog := g.Catalog.Load(ctx, g.catalogLimit())
	read := append([]string(nil), cmd.Read...)

	// Reject unknown titles before entering the loop.
	if rec := g.Engine.Recommend(catalog, read); rec.Outcome == services.OutcomeRejected {
		return rec.Err()
	}

	if cmd.Once {
		rec := g.Engine.Recommend(catalog, read)
		fmt.Fprintln(g.Out, services.FormatMessage(rec))
		return nil
	}

	fmt.Fprintln(g.Out, "Welcome to the Camus Book Recommender!")
	fmt.Fprintln(g.Out, "Press Enter to get a recommendation or 'q' to quit")

	scanner := bufio.NewScanner(g.In)
	for {
		fmt.Fprint(g.Out, promptText)
		if !scanner.Scan() {
			fmt.Fprintln(g.Out)
			return scanner.Err()
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			return nil
		}

		rec := g.Engine.Recommend(catalog, read)
		switch rec.Outcome {
		case services.OutcomeExhausted:
			fmt.Fprintf(g.Out, "\n%s\n", services.FormatMessage(rec))
			return nil
		case services.OutcomeRejected:
			return rec.Err()
		}

		read = append(read, rec.Work.Title)
		fmt.Fprint(g.Out, g.Render.RenderRecommendation(renderRecommendation(rec, read)))
	}
}
