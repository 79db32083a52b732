// Package sqlite implements store.Store on SQLite for local development and
// tests. The uniqueness semantics match the postgres adapter exactly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/pranaflow/prana-server/internal/model"
	"github.com/pranaflow/prana-server/internal/store"
)

// New opens (or creates) a SQLite-backed store and bootstraps the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store over an existing connection (used by tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Activations() store.Activations { return &activations{db: s.db} }
func (s *sqliteStore) Profiles() store.Profiles       { return &profiles{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Activations ---

type activations struct{ db *sql.DB }

func (a *activations) Insert(ctx context.Context, rec *model.ActivationRecord) (*model.ActivationRecord, error) {
	now := time.Now().UTC()
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = now
	}
	_, err := a.db.ExecContext(ctx, `
        INSERT INTO Activations (RecordId, UserId, ChakraIndex, Category, Day, ReflectionText, CompletedAt)
        VALUES (?,?,?,?,?,?,?)`,
		rec.RecordID, rec.UserID, rec.ChakraIndex, rec.Category, rec.Day, rec.ReflectionText, completedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateActivation
		}
		return nil, err
	}
	out := *rec
	out.CompletedAt = completedAt
	return &out, nil
}

func (a *activations) Find(ctx context.Context, userID string, chakraIndex int, day, category string) (*model.ActivationRecord, error) {
	row := a.db.QueryRowContext(ctx, `
        SELECT RecordId, UserId, ChakraIndex, Category, Day, ReflectionText, CompletedAt
        FROM Activations WHERE UserId=? AND ChakraIndex=? AND Day=? AND Category=?`,
		userID, chakraIndex, day, category)
	return scanActivation(row)
}

func (a *activations) List(ctx context.Context, req model.ListActivationsRequest) ([]*model.ActivationRecord, error) {
	q := `SELECT RecordId, UserId, ChakraIndex, Category, Day, ReflectionText, CompletedAt
          FROM Activations WHERE UserId=?`
	args := []interface{}{req.UserID}
	if req.Category != "" {
		q += " AND Category=?"
		args = append(args, req.Category)
	}
	if req.FromDay != "" {
		q += " AND Day>=?"
		args = append(args, req.FromDay)
	}
	if req.ToDay != "" {
		q += " AND Day<=?"
		args = append(args, req.ToDay)
	}
	q += " ORDER BY Day ASC, ChakraIndex ASC"

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.ActivationRecord
	for rows.Next() {
		var rec model.ActivationRecord
		if err := rows.Scan(&rec.RecordID, &rec.UserID, &rec.ChakraIndex, &rec.Category, &rec.Day, &rec.ReflectionText, &rec.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func scanActivation(row *sql.Row) (*model.ActivationRecord, error) {
	var rec model.ActivationRecord
	err := row.Scan(&rec.RecordID, &rec.UserID, &rec.ChakraIndex, &rec.Category, &rec.Day, &rec.ReflectionText, &rec.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) IncrementPoints(ctx context.Context, userID string, delta int) (int, error) {
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO UserProfiles (UserId, EnergyPoints, LastUpdateTime) VALUES (?,?,?)
        ON CONFLICT(UserId) DO UPDATE SET
            EnergyPoints = UserProfiles.EnergyPoints + excluded.EnergyPoints,
            LastUpdateTime = excluded.LastUpdateTime
        RETURNING EnergyPoints`,
		userID, delta, time.Now().UTC())
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (p *profiles) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := p.db.QueryRowContext(ctx, `SELECT UserId, EnergyPoints FROM UserProfiles WHERE UserId=?`, userID)
	var out model.UserProfile
	err := row.Scan(&out.UserID, &out.EnergyPoints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// isUniqueViolation reports whether err is a SQLite unique/primary-key
// constraint failure. modernc.org/sqlite surfaces these as
// "UNIQUE constraint failed: ..." in the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
