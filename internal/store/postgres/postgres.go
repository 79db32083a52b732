// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver. The composite primary key on activations enforces the
// once-per-chakra-per-day invariant; insert conflicts surface as
// model.ErrDuplicateActivation.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pranaflow/prana-server/internal/model"
	"github.com/pranaflow/prana-server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Activations() store.Activations { return &activations{db: s.db} }
func (s *pgStore) Profiles() store.Profiles       { return &profiles{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap ensures the schema exists. Deployments that run migrations out of
// band still pass through this; every statement is idempotent.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activations (
            record_id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            chakra_index INT NOT NULL,
            category TEXT NOT NULL,
            day DATE NOT NULL,
            reflection_text TEXT,
            completed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY (user_id, chakra_index, day, category)
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS activations_record_id_idx ON activations (record_id)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
            user_id TEXT PRIMARY KEY,
            energy_points INT NOT NULL DEFAULT 0,
            last_update_time TIMESTAMPTZ
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres bootstrap: %w", err)
		}
	}
	return nil
}

// --- Activations ---

type activations struct{ db *sql.DB }

func (a *activations) Insert(ctx context.Context, rec *model.ActivationRecord) (*model.ActivationRecord, error) {
	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	_, err := a.db.ExecContext(ctx, `
        INSERT INTO activations (record_id, user_id, chakra_index, category, day, reflection_text, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
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
        SELECT record_id, user_id, chakra_index, category, day, reflection_text, completed_at
        FROM activations WHERE user_id=$1 AND chakra_index=$2 AND day=$3 AND category=$4`,
		userID, chakraIndex, day, category)

	rec, err := scanActivation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return rec, err
}

func (a *activations) List(ctx context.Context, req model.ListActivationsRequest) ([]*model.ActivationRecord, error) {
	q := `SELECT record_id, user_id, chakra_index, category, day, reflection_text, completed_at
          FROM activations WHERE user_id=$1`
	args := []interface{}{req.UserID}
	if req.Category != "" {
		args = append(args, req.Category)
		q += fmt.Sprintf(" AND category=$%d", len(args))
	}
	if req.FromDay != "" {
		args = append(args, req.FromDay)
		q += fmt.Sprintf(" AND day>=$%d", len(args))
	}
	if req.ToDay != "" {
		args = append(args, req.ToDay)
		q += fmt.Sprintf(" AND day<=$%d", len(args))
	}
	q += " ORDER BY day ASC, chakra_index ASC"

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.ActivationRecord
	for rows.Next() {
		rec, err := scanActivation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// scanActivation scans one row; the day column arrives as DATE and is
// normalized back to the ledger's day-string form.
func scanActivation(scan func(dest ...interface{}) error) (*model.ActivationRecord, error) {
	var rec model.ActivationRecord
	var day time.Time
	if err := scan(&rec.RecordID, &rec.UserID, &rec.ChakraIndex, &rec.Category, &day, &rec.ReflectionText, &rec.CompletedAt); err != nil {
		return nil, err
	}
	rec.Day = day.Format(model.DayFormat)
	return &rec, nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) IncrementPoints(ctx context.Context, userID string, delta int) (int, error) {
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO user_profiles (user_id, energy_points, last_update_time)
        VALUES ($1,$2,now())
        ON CONFLICT (user_id) DO UPDATE SET
            energy_points = user_profiles.energy_points + EXCLUDED.energy_points,
            last_update_time = now()
        RETURNING energy_points`,
		userID, delta)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (p *profiles) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := p.db.QueryRowContext(ctx, `SELECT user_id, energy_points FROM user_profiles WHERE user_id=$1`, userID)
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

// isUniqueViolation reports whether err is a Postgres unique-violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
