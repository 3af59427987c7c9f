package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":       RoleAdmin,
		" ADMIN ":     RoleAdmin,
		"super_admin": RoleAdmin,
		"technician":  RoleTechnician,
		"Tech":        RoleTechnician,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseRole("customer")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestLandingPath(t *testing.T) {
	require.Equal(t, "/technician/jobs", RoleTechnician.LandingPath())
	require.Equal(t, "/overview", RoleAdmin.LandingPath())
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &Session{ExpiresAt: now.Add(time.Minute)}

	require.False(t, s.Expired(now))
	require.True(t, s.Expired(now.Add(time.Minute)))
	require.False(t, (&Session{}).Expired(now))
}
