package snapshot

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// PostgresStore keeps snapshots in the snapshots table as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens dsn with the pgx driver and applies pending
// migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// Migrate applies the embedded schema migrations to db.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate snapshots: %w", err)
	}
	return nil
}

const (
	selectSnapshot = `SELECT profile, languages, fetched_at, partial_failures FROM snapshots WHERE login = $1`
	upsertSnapshot = `
INSERT INTO snapshots (login, profile, languages, fetched_at, partial_failures)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (login) DO UPDATE SET
	profile = EXCLUDED.profile,
	languages = EXCLUDED.languages,
	fetched_at = EXCLUDED.fetched_at,
	partial_failures = EXCLUDED.partial_failures`
)

func (s *PostgresStore) Get(ctx context.Context, login string) (*Snapshot, error) {
	snap := Snapshot{Login: Key(login)}
	var profile, languages, failures []byte
	err := s.db.QueryRowContext(ctx, selectSnapshot, snap.Login).
		Scan(&profile, &languages, &snap.FetchedAt, &failures)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get snapshot: %w", err)
	}
	if err := json.Unmarshal(profile, &snap.Profile); err != nil {
		return nil, fmt.Errorf("parse profile of %s: %w", login, err)
	}
	if err := json.Unmarshal(languages, &snap.Languages); err != nil {
		return nil, fmt.Errorf("parse languages of %s: %w", login, err)
	}
	if err := json.Unmarshal(failures, &snap.PartialFailures); err != nil {
		return nil, fmt.Errorf("parse failures of %s: %w", login, err)
	}
	return &snap, nil
}

func (s *PostgresStore) Put(ctx context.Context, snap *Snapshot) error {
	profile, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	languages, err := json.Marshal(snap.Languages)
	if err != nil {
		return fmt.Errorf("marshal languages: %w", err)
	}
	failures := snap.PartialFailures
	if failures == nil {
		failures = []string{}
	}
	failuresJSON, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("marshal failures: %w", err)
	}
	_, err = s.db.ExecContext(ctx, upsertSnapshot, Key(snap.Login), profile, languages, snap.FetchedAt, failuresJSON)
	if err != nil {
		return fmt.Errorf("postgres put snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

var _ Store = (*PostgresStore)(nil)
