package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"librero/internal/database"
	"librero/internal/logging"
)

// BookImporter is the write side of the catalog store used by ImportCSV.
type BookImporter interface {
	EnsureSchema(ctx context.Context) error
	InsertBooks(ctx context.Context, rows []database.BookRow) (int, error)
}

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var importColumns = []string{"title", "authors", "language_code", "isbn", "publication_date"}

// ImportCSV reads a header-driven book export and appends its rows to the
// store. The title and authors columns are required; other known columns are
// optional and unknown ones ignored. Rows with a blank title are skipped.
// When limit is positive at most limit rows are imported.
func ImportCSV(ctx context.Context, repo BookImporter, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errors.New("read csv header: empty input")
		}
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"title", "authors"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingColumn, required)
		}
	}

	field := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []database.BookRow
	skipped := 0
	for limit <= 0 || len(rows) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv line %d: %w", len(rows)+skipped+2, err)
		}

		values := make(map[string]string, len(importColumns))
		for _, column := range importColumns {
			values[column] = field(record, column)
		}
		if values["title"] == "" {
			skipped++
			continue
		}
		rows = append(rows, database.BookRow{
			Title:           values["title"],
			Authors:         values["authors"],
			LanguageCode:    values["language_code"],
			ISBN:            values["isbn"],
			PublicationDate: values["publication_date"],
		})
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	inserted, err := repo.InsertBooks(ctx, rows)
	if err != nil {
		return 0, err
	}

	logging.Ctx(ctx).Info().
		Int("inserted", inserted).
		Int("skipped", skipped).
		Msg("Imported books from CSV")
	return inserted, nil
}
