package out

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"aria/internal/modules/wellness/domain"
	wellnessout "aria/internal/modules/wellness/port/out"
)

const periodLogsDDL = `
CREATE TABLE IF NOT EXISTS period_logs (
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS period_logs_user_start ON period_logs (user_id, start_date);
`

// PostgresMirror writes period events straight into a period_logs table.
type PostgresMirror struct {
	pool *pgxpool.Pool
}

func OpenPostgresMirror(ctx context.Context, databaseURL string) (*PostgresMirror, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	config.MaxConns = 2
	config.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, periodLogsDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure period_logs: %w", err)
	}
	return &PostgresMirror{pool: pool}, nil
}

var _ wellnessout.CycleMirror = (*PostgresMirror)(nil)

func (m *PostgresMirror) LogStart(ctx context.Context, start domain.MirrorStart) error {
	notes := start.Notes
	if notes == "" {
		notes = domain.NoteStarted
	}
	_, err := m.pool.Exec(ctx,
		`INSERT INTO period_logs (user_id, start_date, notes) VALUES ($1, $2::date, $3)`,
		start.UserID, start.Date, notes)
	if err != nil {
		return fmt.Errorf("insert period start: %w", err)
	}
	return nil
}

func (m *PostgresMirror) LogEnd(ctx context.Context, end domain.MirrorEnd) error {
	_, err := m.pool.Exec(ctx,
		`UPDATE period_logs SET end_date = $3::date WHERE user_id = $1 AND start_date = $2::date`,
		end.UserID, end.StartDate, end.EndDate)
	if err != nil {
		return fmt.Errorf("update period end: %w", err)
	}
	return nil
}

func (m *PostgresMirror) Close() {
	m.pool.Close()
}
