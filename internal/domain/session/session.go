package session

import "time"

// Session is a signed-in dashboard user. ID is the hashed cookie key; the
// raw key only ever lives in the browser cookie.
type Session struct {
	ID        string
	UserID    int64
	Name      string
	Email     string
	Role      Role
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
