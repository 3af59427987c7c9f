package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dom "example.com/fieldops/internal/domain/session"
)

// openTestRepo connects to PG_DSN and prepares the session table. Tests are
// skipped when no database is configured.
func openTestRepo(t *testing.T) *SessionRepository {
	t.Helper()
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewSessionRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	// running it twice must be harmless
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func testID(c string) string { return strings.Repeat(c, 64) }

func TestSessionRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	id := testID("a")
	t.Cleanup(func() { _ = repo.Delete(context.Background(), id) })

	now := time.Now().UTC().Truncate(time.Second)
	in := &dom.Session{
		ID:        id,
		UserID:    7,
		Name:      "Dana",
		Email:     "dana@example.com",
		Role:      dom.RoleTechnician,
		Token:     "backend-token",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, in))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, in.UserID, got.UserID)
	require.Equal(t, in.Email, got.Email)
	require.Equal(t, dom.RoleTechnician, got.Role)
	require.Equal(t, in.Token, got.Token)
	require.True(t, in.ExpiresAt.Equal(got.ExpiresAt))
}

func TestSessionRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	_, err := repo.GetByID(ctx, testID("0"))
	require.ErrorIs(t, err, dom.ErrSessionNotFound)

	require.ErrorIs(t, repo.Delete(ctx, testID("0")), dom.ErrSessionNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	live, stale := testID("b"), testID("c")
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), live)
		_ = repo.Delete(context.Background(), stale)
	})

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, &dom.Session{ID: live, Role: dom.RoleAdmin, ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &dom.Session{ID: stale, Role: dom.RoleAdmin, ExpiresAt: now.Add(-time.Hour), CreatedAt: now}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))

	_, err = repo.GetByID(ctx, stale)
	require.ErrorIs(t, err, dom.ErrSessionNotFound)
	_, err = repo.GetByID(ctx, live)
	require.NoError(t, err)
}
