package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"

	dom "example.com/fieldops/internal/domain/session"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS dashboard_sessions (
    id         CHAR(64)     NOT NULL PRIMARY KEY,
    user_id    BIGINT       NOT NULL,
    name       VARCHAR(255) NOT NULL DEFAULT '',
    email      VARCHAR(255) NOT NULL DEFAULT '',
    role       VARCHAR(32)  NOT NULL,
    token      TEXT         NOT NULL,
    expires_at DATETIME(6)  NOT NULL,
    created_at DATETIME(6)  NOT NULL,
    INDEX idx_dashboard_sessions_expires (expires_at)
)`

// Open connects with dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createSessionsTable)
	return err
}

func (r *SessionRepository) Create(ctx context.Context, s *dom.Session) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO dashboard_sessions (id, user_id, name, email, role, token, expires_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.Email, string(s.Role), s.Token, s.ExpiresAt.UTC(), s.CreatedAt.UTC(),
	)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*dom.Session, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, name, email, role, token, expires_at, created_at
        FROM dashboard_sessions
        WHERE id = ?
    `, id)

	var s dom.Session
	var role string
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &role, &s.Token, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrSessionNotFound
		}
		return nil, err
	}
	s.Role = dom.Role(role)
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return dom.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
