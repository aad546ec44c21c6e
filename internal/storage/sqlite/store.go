// Package sqlite stores accounts in SQLite through the pure-Go modernc driver.
// The default DSN is a shared in-memory database, so it is as transient as the
// memory backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/logger"
	"github.com/stridex/stridex/internal/migration"
	"github.com/stridex/stridex/internal/models"
	"github.com/stridex/stridex/migrations"
)

type Store struct {
	dsn string
	db  *sql.DB
}

func NewStore(dsn string) *Store {
	return &Store{dsn: dsn}
}

func (s *Store) Name() string { return "sqlite" }

func (s *Store) Init(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps a shared-cache memory database alive and avoids
	// SQLITE_LOCKED between pooled connections.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(s.db, subFS).Apply(func(msg string) {
		logger.Debug(msg, "backend", "sqlite")
	})
	return err
}

// SaveAccount upserts the account row and appends journal entries not yet stored.
// The journal is append-only, so existing rows are never rewritten.
func (s *Store) SaveAccount(ctx context.Context, a models.Account) error {
	if a.User.ID == "" {
		return errors.Validation("user id", "cannot be empty")
	}

	body := a.Clone()
	body.Journal = nil
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, username, xp, total_streak, created_at, updated_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			xp = excluded.xp,
			total_streak = excluded.total_streak,
			updated_at = excluded.updated_at,
			payload = excluded.payload`,
		a.User.ID, a.User.Username, a.User.XP, a.User.TotalStreak,
		a.User.CreatedAt.UTC().Format(time.RFC3339), now, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", a.User.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO journal_entries (id, account_id, seq, created_at, text, sentiment, xp_awarded)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range a.Journal {
		_, err := stmt.ExecContext(ctx, e.ID, a.User.ID, i, e.CreatedAt.UTC().Format(time.RFC3339Nano),
			e.Text, string(e.Sentiment), e.XPAwarded)
		if err != nil {
			return fmt.Errorf("failed to save journal entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetAccount(ctx context.Context, id string) (models.Account, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM accounts WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.Account{}, errors.NotFound("account", id)
	}
	if err != nil {
		return models.Account{}, err
	}

	var a models.Account
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return models.Account{}, fmt.Errorf("failed to decode account %s: %w", id, err)
	}

	a.Journal, err = s.journal(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) journal(ctx context.Context, accountID string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, text, sentiment, xp_awarded
		FROM journal_entries WHERE account_id = ? ORDER BY seq`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var createdAt, sentiment string
		if err := rows.Scan(&e.ID, &createdAt, &e.Text, &sentiment, &e.XPAwarded); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		e.Sentiment = constants.Sentiment(sentiment)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListUsers returns users in creation order
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM accounts ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var head struct {
			User models.User `json:"user"`
		}
		if err := json.Unmarshal([]byte(payload), &head); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		out = append(out, head.User)
	}
	return out, rows.Err()
}
