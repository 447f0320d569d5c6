package portalsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SessionStore persists one session per role on disk so a CLI or desktop
// frontend can survive restarts. Each role gets its own file; logging in as
// one kind never disturbs a cached session of another kind.
type SessionStore struct {
	dir string
}

// NewSessionStore creates the backing directory if needed.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("portalsdk: creating session dir: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

func (st *SessionStore) path(role string) string {
	return filepath.Join(st.dir, "session-"+role+".json")
}

// Save persists a session, replacing any previous one for the same role.
func (st *SessionStore) Save(s *Session) error {
	if s == nil || s.Role == "" {
		return errors.New("portalsdk: nothing to save")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("portalsdk: encoding session: %w", err)
	}
	if err := os.WriteFile(st.path(s.Role), data, 0o600); err != nil {
		return fmt.Errorf("portalsdk: writing session: %w", err)
	}
	return nil
}

// Load reads the cached session for a role. A missing file returns
// (nil, nil): no session is not an error.
func (st *SessionStore) Load(c *Client, role string) (*Session, error) {
	data, err := os.ReadFile(st.path(role))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("portalsdk: reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt cache is unrecoverable state; drop it.
		st.Clear(role)
		return nil, nil
	}
	s.bind(c)
	return &s, nil
}

// Clear removes the cached session for a role, if any.
func (st *SessionStore) Clear(role string) error {
	err := os.Remove(st.path(role))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Resume loads the cached session for a role and proves it still works:
// structural checks first, then a /v1/me round-trip. Any failure clears
// the cache and returns (nil, nil) so the caller falls back to login.
// Network errors are returned as-is; an unreachable server says nothing
// about the session's validity.
func (st *SessionStore) Resume(ctx context.Context, c *Client, role string) (*Session, error) {
	s, err := st.Load(c, role)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}

	if !s.Valid(time.Now()) {
		st.Clear(role)
		return nil, nil
	}

	if _, err := s.Me(ctx); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// The server rejected the token: revoked, expired, or the
			// account went away. The cache is stale.
			st.Clear(role)
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}
