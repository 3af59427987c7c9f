package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "example.com/fieldops/internal/domain/session"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS dashboard_sessions (
    id         CHAR(64)     PRIMARY KEY,
    user_id    BIGINT       NOT NULL,
    name       TEXT         NOT NULL DEFAULT '',
    email      TEXT         NOT NULL DEFAULT '',
    role       VARCHAR(32)  NOT NULL,
    token      TEXT         NOT NULL,
    expires_at TIMESTAMPTZ  NOT NULL,
    created_at TIMESTAMPTZ  NOT NULL
)`

const createSessionsIndex = `CREATE INDEX IF NOT EXISTS idx_dashboard_sessions_expires ON dashboard_sessions (expires_at)`

// Open creates a pool for dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSessionsTable); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, createSessionsIndex)
	return err
}

func (r *SessionRepository) Create(ctx context.Context, s *dom.Session) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO dashboard_sessions (id, user_id, name, email, role, token, expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.UserID, s.Name, s.Email, string(s.Role), s.Token, s.ExpiresAt, s.CreatedAt,
	)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*dom.Session, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, user_id, name, email, role, token, expires_at, created_at
        FROM dashboard_sessions
        WHERE id = $1
    `, id)

	var s dom.Session
	var role string
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &role, &s.Token, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrSessionNotFound
		}
		return nil, err
	}
	s.Role = dom.Role(role)
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dashboard_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return dom.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dashboard_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
