package portalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the portal API. Unauthenticated operations live here;
// Login returns a Session for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a portal API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Login authenticates against one municipality and role and returns a live
// session.
func (c *Client) Login(ctx context.Context, slug, role string, req LoginRequest) (*Session, error) {
	var resp LoginResponse
	path := fmt.Sprintf("/v1/t/%s/%s/login", slug, role)
	if err := c.post(ctx, path, "", req, &resp); err != nil {
		return nil, err
	}
	return newSession(c, role, &resp), nil
}

// Register creates a proponent account. No token is returned; call Login
// afterwards.
func (c *Client) Register(ctx context.Context, slug string, req RegisterRequest) (*PrincipalInfo, error) {
	var resp PrincipalInfo
	path := fmt.Sprintf("/v1/t/%s/proponents/register", slug)
	if err := c.post(ctx, path, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset asks for a reset token. The server answers 202
// whether or not the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, slug, role, email string) error {
	path := fmt.Sprintf("/v1/t/%s/%s/password-reset", slug, role)
	return c.post(ctx, path, "", ResetRequest{Email: email}, nil)
}

// ConfirmPasswordReset redeems a reset token and sets a new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, slug, role, token, newPassword string) error {
	path := fmt.Sprintf("/v1/t/%s/%s/password-reset/confirm", slug, role)
	return c.post(ctx, path, "", ResetConfirmRequest{Token: token, Password: newPassword}, nil)
}

// post sends a JSON request; bearer may be empty for public endpoints.
// out may be nil when the caller only cares about success.
func (c *Client) post(ctx context.Context, path, bearer string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, bearer, in, out)
}

func (c *Client) get(ctx context.Context, path, bearer string, out any) error {
	return c.do(ctx, http.MethodGet, path, bearer, nil, out)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return fmt.Errorf("portalsdk: encoding request: %w", err)
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("portalsdk: building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("portalsdk: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("portalsdk: decoding response: %w", err)
		}
	}
	return nil
}
