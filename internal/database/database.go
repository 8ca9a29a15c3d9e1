package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"librero/internal/models"
)

// ErrNoDatabase is returned by Open when no database path is configured.
var ErrNoDatabase = errors.New("no database path configured")

const schema = `
	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		authors TEXT NOT NULL,
		language_code TEXT,
		isbn TEXT,
		publication_date TEXT
	)
`

// BookRow is one row of the books table.
type BookRow struct {
	ID              int64
	Title           string
	Authors         string
	LanguageCode    string
	ISBN            string
	PublicationDate string
}

// DB wraps the SQLite connection pool holding the books table.
type DB struct {
	conn *sql.DB
	path string

	// seedMu serializes the count-then-insert seed path within the process.
	seedMu sync.Mutex
}

// Open prepares a connection pool for the SQLite file at path. The file is
// not touched until the first query, so an unreachable path only surfaces
// as an error from the methods below.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, ErrNoDatabase
	}
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the SQLite file path.
func (db *DB) Path() string {
	return db.path
}

// EnsureSchema creates the books table if it does not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

// Count returns the number of rows in the books table.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// SeedIfEmpty inserts works when the books table has no rows and reports how
// many rows were written. Two processes racing on an empty table may both
// seed; within one process the mutex prevents it.
func (db *DB) SeedIfEmpty(ctx context.Context, works []models.Work) (int, error) {
	db.seedMu.Lock()
	defer db.seedMu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	rows := make([]BookRow, 0, len(works))
	for _, w := range works {
		rows = append(rows, BookRow{
			Title:           w.Title,
			Authors:         models.DefaultAuthor,
			LanguageCode:    models.DefaultLanguage,
			ISBN:            "",
			PublicationDate: strconv.Itoa(w.Year),
		})
	}
	inserted, err := insertRows(ctx, tx, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

// InsertBooks appends rows to the books table in a single transaction.
func (db *DB) InsertBooks(ctx context.Context, rows []BookRow) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	inserted, err := insertRows(ctx, tx, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return inserted, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, rows []BookRow) (int, error) {
	statement, err := tx.PrepareContext(ctx, `
		INSERT INTO books (title, authors, language_code, isbn, publication_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer statement.Close()

	for i, r := range rows {
		if _, err := statement.ExecContext(ctx, r.Title, r.Authors, r.LanguageCode, r.ISBN, r.PublicationDate); err != nil {
			return i, fmt.Errorf("insert %q: %w", r.Title, err)
		}
	}
	return len(rows), nil
}

// ListBooks returns up to limit rows sorted by title.
func (db *DB) ListBooks(ctx context.Context, limit int) ([]BookRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, authors,
			COALESCE(language_code, ''), COALESCE(isbn, ''), COALESCE(publication_date, '')
		FROM books
		ORDER BY title
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []BookRow
	for rows.Next() {
		var b BookRow
		if err := rows.Scan(&b.ID, &b.Title, &b.Authors, &b.LanguageCode, &b.ISBN, &b.PublicationDate); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|2[0-9]{3})\b`)

// ParseYear extracts the first four-digit year between 1000 and 2999 from a
// publication date such as "9/16/2006" or "1942". Returns 0 if none is found.
func ParseYear(publicationDate string) int {
	match := yearPattern.FindString(publicationDate)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}

// Work converts the row into a catalog entry. Rows matching a built-in title
// borrow its genre, and its year when the row has none.
func (b BookRow) Work() models.Work {
	w := models.Work{
		Title:   b.Title,
		Year:    ParseYear(b.PublicationDate),
		Authors: b.Authors,
	}
	if def, ok := models.LookupDefault(b.Title); ok {
		w.Genre = def.Genre
		if w.Year == 0 {
			w.Year = def.Year
		}
	}
	return w
}
