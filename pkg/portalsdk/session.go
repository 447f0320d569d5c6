package portalsdk

import (
	"context"
	"fmt"
	"time"
)

// Session is an authenticated session for one principal kind. There is no
// refresh flow: the token lives for its full window and the session simply
// dies with it.
type Session struct {
	client *Client

	Role      string        `json:"role"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Principal PrincipalInfo `json:"principal"`
	Tenant    TenantInfo    `json:"tenant"`
}

func newSession(c *Client, role string, resp *LoginResponse) *Session {
	return &Session{
		client:    c,
		Role:      role,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		Principal: resp.Principal,
		Tenant:    resp.Tenant,
	}
}

// Valid performs the structural check a cached session must pass before it
// is trusted enough to even try a server round-trip.
func (s *Session) Valid(now time.Time) bool {
	return s != nil &&
		s.Token != "" &&
		s.Principal.ID != "" &&
		s.Principal.Role == s.Role &&
		now.Before(s.ExpiresAt)
}

func (s *Session) bind(c *Client) { s.client = c }

func (s *Session) authed() (string, error) {
	if !s.Valid(time.Now()) {
		return "", ErrInvalidToken
	}
	return s.Token, nil
}

// Me fetches the authoritative profile for this session's token. Resume
// uses it to confirm a cached session is still honoured server-side.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp MeResponse
	if err := s.client.get(ctx, "/v1/me", token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProponent registers a proponent entity owned by this session's
// principal. Proponent sessions only.
func (s *Session) CreateProponent(ctx context.Context, req ProponentRequest) (*ProponentInfo, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp ProponentInfo
	if err := s.client.post(ctx, "/v1/proponents", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProject opens a draft project under one of the caller's proponent
// entities.
func (s *Session) CreateProject(ctx context.Context, req ProjectRequest) (*ProjectInfo, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp ProjectInfo
	if err := s.client.post(ctx, "/v1/projects", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProject rewrites a draft project's content.
func (s *Session) UpdateProject(ctx context.Context, projectID string, req ProjectRequest) (*ProjectInfo, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp ProjectInfo
	path := fmt.Sprintf("/v1/projects/%s", projectID)
	if err := s.client.do(ctx, "PUT", path, token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitProject hands a draft over for evaluation.
func (s *Session) SubmitProject(ctx context.Context, projectID string) (*ProjectInfo, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp ProjectInfo
	path := fmt.Sprintf("/v1/projects/%s/submit", projectID)
	if err := s.client.post(ctx, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProjects returns the caller's projects.
func (s *Session) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	token, err := s.authed()
	if err != nil {
		return nil, err
	}

	var resp []ProjectInfo
	if err := s.client.get(ctx, "/v1/projects", token, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
