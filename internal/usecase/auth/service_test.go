package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domsession "example.com/fieldops/internal/domain/session"
)

type mockSessionRepository struct {
	sessions  map[string]*domsession.Session
	createErr error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domsession.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, s *domsession.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	cloned := *s
	m.sessions[s.ID] = &cloned
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domsession.Session, error) {
	if s, ok := m.sessions[id]; ok {
		cloned := *s
		return &cloned, nil
	}
	return nil, domsession.ErrSessionNotFound
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return domsession.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

type mockAuthenticator struct {
	identity *Identity
	err      error
	gotEmail string
}

func (m *mockAuthenticator) Login(ctx context.Context, email, password string) (*Identity, error) {
	m.gotEmail = email
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

type mockInspector struct {
	claims *Claims
	err    error
}

func (m *mockInspector) Inspect(token string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

type plainKeys struct{ n int }

func (k *plainKeys) NewKey() string {
	k.n++
	return "key-" + string(rune('0'+k.n))
}

func (k *plainKeys) Hash(key string) string { return "h(" + key + ")" }

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *mockSessionRepository, authn *mockAuthenticator, insp *mockInspector) *Service {
	svc := NewService(repo, authn, insp, &plainKeys{}, 12*time.Hour)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestLogin_Success(t *testing.T) {
	repo := newMockSessionRepository()
	authn := &mockAuthenticator{identity: &Identity{Token: "tok", UserID: 7, Name: "Ana", Role: "admin"}}
	svc := newTestService(repo, authn, &mockInspector{claims: &Claims{}})

	res, err := svc.Login(context.Background(), LoginInput{Email: "  Ana@Example.com ", Password: "secret123"})

	require.NoError(t, err)
	require.Equal(t, "key-1", res.Key)
	require.Equal(t, "h(key-1)", res.Session.ID)
	require.Equal(t, domsession.RoleAdmin, res.Session.Role)
	require.Equal(t, "ana@example.com", authn.gotEmail)
	require.Equal(t, fixedNow.Add(12*time.Hour), res.Session.ExpiresAt)
	require.Contains(t, repo.sessions, "h(key-1)")
}

func TestLogin_TokenRoleAndExpiryWin(t *testing.T) {
	repo := newMockSessionRepository()
	authn := &mockAuthenticator{identity: &Identity{Token: "tok", Role: "admin"}}
	exp := fixedNow.Add(time.Hour)
	svc := newTestService(repo, authn, &mockInspector{claims: &Claims{UserID: 9, Role: "technician", ExpiresAt: exp}})

	res, err := svc.Login(context.Background(), LoginInput{Email: "t@example.com", Password: "pw"})

	require.NoError(t, err)
	require.Equal(t, domsession.RoleTechnician, res.Session.Role)
	require.Equal(t, int64(9), res.Session.UserID)
	require.Equal(t, exp, res.Session.ExpiresAt)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := newTestService(newMockSessionRepository(), &mockAuthenticator{}, &mockInspector{})

	_, err := svc.Login(context.Background(), LoginInput{Email: " ", Password: "x"})
	require.ErrorIs(t, err, domsession.ErrInvalidCredential)

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@b.c"})
	require.ErrorIs(t, err, domsession.ErrInvalidCredential)
}

func TestLogin_BackendRejects(t *testing.T) {
	backendErr := errors.New("401 from backend")
	svc := newTestService(newMockSessionRepository(), &mockAuthenticator{err: backendErr}, &mockInspector{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})

	require.ErrorIs(t, err, backendErr)
}

func TestLogin_UnknownRole(t *testing.T) {
	authn := &mockAuthenticator{identity: &Identity{Token: "tok", Role: "customer"}}
	svc := newTestService(newMockSessionRepository(), authn, &mockInspector{claims: &Claims{}})

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})

	require.ErrorIs(t, err, domsession.ErrInvalidRole)
}

func TestLogin_ExpiredToken(t *testing.T) {
	authn := &mockAuthenticator{identity: &Identity{Token: "tok", Role: "admin"}}
	insp := &mockInspector{claims: &Claims{ExpiresAt: fixedNow.Add(-time.Minute)}}
	svc := newTestService(newMockSessionRepository(), authn, insp)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})

	require.ErrorIs(t, err, domsession.ErrSessionExpired)
}

func TestLogin_BadToken(t *testing.T) {
	authn := &mockAuthenticator{identity: &Identity{Token: "garbage", Role: "admin"}}
	svc := newTestService(newMockSessionRepository(), authn, &mockInspector{err: errors.New("malformed")})

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})

	require.ErrorIs(t, err, domsession.ErrUnauthenticated)
}

func TestLoadAndLogout(t *testing.T) {
	repo := newMockSessionRepository()
	authn := &mockAuthenticator{identity: &Identity{Token: "tok", Role: "technician"}}
	svc := newTestService(repo, authn, &mockInspector{claims: &Claims{}})

	var ended []string
	svc.OnLogout(func(id string) { ended = append(ended, id) })

	res, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)

	sess, err := svc.Load(context.Background(), res.Key)
	require.NoError(t, err)
	require.Equal(t, res.Session.ID, sess.ID)

	require.NoError(t, svc.Logout(context.Background(), res.Key))
	require.Equal(t, []string{res.Session.ID}, ended)

	_, err = svc.Load(context.Background(), res.Key)
	require.ErrorIs(t, err, domsession.ErrUnauthenticated)
}

func TestLoad_Expired(t *testing.T) {
	repo := newMockSessionRepository()
	repo.sessions["h(old)"] = &domsession.Session{ID: "h(old)", ExpiresAt: fixedNow.Add(-time.Second)}
	svc := newTestService(repo, &mockAuthenticator{}, &mockInspector{})

	var ended []string
	svc.OnLogout(func(id string) { ended = append(ended, id) })

	_, err := svc.Load(context.Background(), "old")

	require.ErrorIs(t, err, domsession.ErrSessionExpired)
	require.NotContains(t, repo.sessions, "h(old)")
	require.Equal(t, []string{"h(old)"}, ended)
}

func TestLoad_EmptyKey(t *testing.T) {
	svc := newTestService(newMockSessionRepository(), &mockAuthenticator{}, &mockInspector{})

	_, err := svc.Load(context.Background(), "")

	require.ErrorIs(t, err, domsession.ErrUnauthenticated)
}

func TestPurge(t *testing.T) {
	repo := newMockSessionRepository()
	repo.sessions["a"] = &domsession.Session{ID: "a", ExpiresAt: fixedNow.Add(-time.Hour)}
	repo.sessions["b"] = &domsession.Session{ID: "b", ExpiresAt: fixedNow.Add(time.Hour)}
	svc := newTestService(repo, &mockAuthenticator{}, &mockInspector{})

	n, err := svc.Purge(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Contains(t, repo.sessions, "b")
}
