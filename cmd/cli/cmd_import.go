package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"librero/internal/services"
)

type ImportCmd struct {
	CSV   string `name:"csv" required:"" help:"Path to the CSV export" type:"existingfile"`
	Limit int    `help:"Import at most this many rows (0 imports all)" default:"0"`
}

func (cmd *ImportCmd) Run(g *Globals) error {
	if g.Store == nil {
		return errors.New("import requires a database: pass --db or set database.path")
	}

	f, err := os.Open(cmd.CSV)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	n, err := services.ImportCSV(context.Background(), g.Store, f, cmd.Limit)
	if err != nil {
		return fmt.Errorf("import %s: %w", cmd.CSV, err)
	}
	fmt.Fprintf(g.Out, "Imported %d books from %s\n", n, cmd.CSV)
	return nil
}
