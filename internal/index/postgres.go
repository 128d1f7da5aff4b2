package index

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres:// scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdfquery/migrations"
)

// TxBeginner is the part of a pgx pool the Postgres builder needs.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresBuilder writes the index to Postgres: a docs table plus a docs_fts
// table with a generated tsvector column.
type PostgresBuilder struct {
	db          TxBeginner
	resetSchema func() error
	close       func()
}

// NewPostgresBuilder connects to connString. The schema is dropped and
// recreated on every Rebuild.
func NewPostgresBuilder(ctx context.Context, connString string) (*PostgresBuilder, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresBuilder{
		db:          pool,
		resetSchema: func() error { return resetPostgresSchema(connString) },
		close:       pool.Close,
	}, nil
}

// Close releases the connection pool.
func (b *PostgresBuilder) Close() {
	if b.close != nil {
		b.close()
	}
}

// Rebuild recreates the schema and inserts entries in one transaction.
func (b *PostgresBuilder) Rebuild(ctx context.Context, entries []Entry) (err error) {
	if b.resetSchema != nil {
		if err := b.resetSchema(); err != nil {
			return err
		}
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i, e := range entries {
		if err = insertPostgres(ctx, tx, e); err != nil {
			return fmt.Errorf("insert entry %d (%s): %w", i, e.Source, err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func insertPostgres(ctx context.Context, tx pgx.Tx, e Entry) error {
	query, args, err := sq.Insert("docs").
		Columns("case_id", "title", "reporters", "source").
		Values(e.CaseID, e.Title, e.Reporters, e.Source).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building docs insert: %w", err)
	}
	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("inserting doc: %w", err)
	}

	query, args, err = sq.Insert("docs_fts").
		Columns("doc_id", "case_id", "title", "reporters", "all_text").
		Values(id, e.CaseID, e.Title, e.Reporters, e.AllText).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building fts insert: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting fts row: %w", err)
	}
	return nil
}

// resetPostgresSchema migrates all the way down and back up so every build
// starts from empty tables.
func resetPostgresSchema(connString string) error {
	source, err := iofs.New(migrations.FS, migrations.PostgresDir)
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}
