package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/vocnav/internal/auth"
)

// SessionManager is the session surface the login commands drive.
type SessionManager interface {
	// Current returns the signed-in user id, or "" when signed out.
	Current() string
	SignIn(userID string) error
	SignOut() error
}

// ManualSessions keeps the session in memory for the life of the process.
// It backs offline runs and tests.
type ManualSessions struct {
	*auth.Manual
}

func NewManualSessions(initial string) *ManualSessions {
	return &ManualSessions{Manual: auth.NewManual(initial)}
}

func (m *ManualSessions) SignIn(userID string) error {
	m.Set(userID)
	return nil
}

func (m *ManualSessions) SignOut() error {
	m.Set("")
	return nil
}

// FileSessions persists signed session tokens to a file that a
// FileProvider watches.
type FileSessions struct {
	Provider *auth.FileProvider
	Path     string
	Secret   string
	TTL      time.Duration
	Now      func() time.Time
}

func (f *FileSessions) Current() string { return f.Provider.Current() }

func (f *FileSessions) SignIn(userID string) error {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	token, err := auth.IssueToken(f.Secret, userID, f.TTL, now())
	if err != nil {
		return fmt.Errorf("issuing session token: %w", err)
	}
	return auth.WriteSession(f.Path, token)
}

func (f *FileSessions) SignOut() error {
	return auth.ClearSession(f.Path)
}
