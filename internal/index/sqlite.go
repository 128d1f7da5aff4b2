package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// Register the modernc "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"pdfquery/migrations"
)

const defaultSearchLimit = 10

// Hit is one full-text search result. Lower scores rank higher.
type Hit struct {
	ID        int64
	CaseID    string
	Title     string
	Reporters string
	Source    string
	Score     float64
}

// SQLiteBuilder writes the index to a single SQLite file with an FTS5 table.
type SQLiteBuilder struct {
	path string
}

// NewSQLiteBuilder creates a builder for the database file at path.
func NewSQLiteBuilder(path string) *SQLiteBuilder {
	return &SQLiteBuilder{path: path}
}

// Path returns the database file location.
func (b *SQLiteBuilder) Path() string {
	return b.path
}

// Rebuild deletes any existing database file, applies the schema and inserts
// entries in a single transaction.
func (b *SQLiteBuilder) Rebuild(ctx context.Context, entries []Entry) (err error) {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove old index: %w", err)
	}
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
	}

	if err := b.migrate(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, e := range entries {
		if err = insertSQLite(ctx, tx, e); err != nil {
			return fmt.Errorf("insert entry %d (%s): %w", i, e.Source, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func (b *SQLiteBuilder) migrate() error {
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("open index for migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	source, err := iofs.New(migrations.FS, migrations.SQLiteDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	// Closes the source and the database handle.
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func insertSQLite(ctx context.Context, tx *sql.Tx, e Entry) error {
	query, args, err := sq.Insert("docs").
		Columns("case_id", "title", "reporters", "source").
		Values(e.CaseID, e.Title, e.Reporters, e.Source).
		ToSql()
	if err != nil {
		return fmt.Errorf("building docs insert: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting doc: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading doc id: %w", err)
	}

	query, args, err = sq.Insert("docs_fts").
		Columns("rowid", "case_id", "title", "reporters", "all_text").
		Values(id, e.CaseID, e.Title, e.Reporters, e.AllText).
		ToSql()
	if err != nil {
		return fmt.Errorf("building fts insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting fts row: %w", err)
	}
	return nil
}

// Search runs an FTS5 MATCH query against the index, best matches first.
// A non-positive limit returns up to ten hits.
func (b *SQLiteBuilder) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer db.Close()

	query, args, err := sq.Select("d.id", "d.case_id", "d.title", "d.reporters", "d.source", "bm25(docs_fts) AS score").
		From("docs_fts").
		Join("docs d ON d.id = docs_fts.rowid").
		Where("docs_fts MATCH ?", q).
		OrderBy("score").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building search query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.CaseID, &h.Title, &h.Reporters, &h.Source, &h.Score); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading hits: %w", err)
	}
	return hits, nil
}
