package portalsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePortal is a minimal in-memory stand-in for the server side. It only
// knows one tenant ("jau"), one proponent account, and the token "tok-1".
func fakePortal(t *testing.T) *httptest.Server {
	t.Helper()

	principal := PrincipalInfo{
		ID:       "01HZX0000000000000000000PR",
		TenantID: "01HZX0000000000000000000TN",
		Role:     RoleProponent,
		Name:     "Ana Souza",
		Email:    "ana@example.com",
	}
	tenant := TenantInfo{ID: principal.TenantID, Name: "Jaú", Slug: "jau"}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/t/{slug}/{role}/login", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("slug") != "jau" {
			ErrTenantNotFound.WriteError(w)
			return
		}
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != principal.Email || req.Password != "s3cret" {
			ErrBadCredentials.WriteError(w)
			return
		}
		json.NewEncoder(w).Encode(LoginResponse{
			Token:     "tok-1",
			ExpiresAt: time.Now().Add(time.Hour),
			Principal: principal,
			Tenant:    tenant,
		})
	})

	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			ErrInvalidToken.WriteError(w)
			return
		}
		json.NewEncoder(w).Encode(MeResponse{Principal: principal, Tenant: tenant})
	})

	mux.HandleFunc("POST /v1/t/{slug}/proponents/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == principal.Email {
			ErrDuplicate.WriteError(w)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PrincipalInfo{
			ID:    "01HZX0000000000000000000P2",
			Role:  RoleProponent,
			Name:  req.Name,
			Email: req.Email,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginAndMe(t *testing.T) {
	srv := fakePortal(t)
	c := NewClient(srv.URL)

	sess, err := c.Login(context.Background(), "jau", RoleProponent, LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.Equal(t, "tok-1", sess.Token)
	require.Equal(t, RoleProponent, sess.Principal.Role)
	require.True(t, sess.Valid(time.Now()))

	me, err := sess.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, sess.Principal.ID, me.Principal.ID)
	require.Equal(t, "jau", me.Tenant.Slug)
}

func TestLoginBadPasswordIsGeneric(t *testing.T) {
	srv := fakePortal(t)
	c := NewClient(srv.URL)

	_, err := c.Login(context.Background(), "jau", RoleProponent, LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeBadCredentials, apiErr.Code)
}

func TestLoginUnknownTenant(t *testing.T) {
	srv := fakePortal(t)
	c := NewClient(srv.URL)

	_, err := c.Login(context.Background(), "atlantida", RoleProponent, LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, ErrorCodeTenantNotFound, apiErr.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	srv := fakePortal(t)
	c := NewClient(srv.URL)

	_, err := c.Register(context.Background(), "jau", RegisterRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "s3cret",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestSessionStructuralValidity(t *testing.T) {
	now := time.Now()

	valid := &Session{
		Role:      RoleProponent,
		Token:     "tok",
		ExpiresAt: now.Add(time.Minute),
		Principal: PrincipalInfo{ID: "p1", Role: RoleProponent},
	}
	require.True(t, valid.Valid(now))

	expired := *valid
	expired.ExpiresAt = now.Add(-time.Minute)
	require.False(t, expired.Valid(now))

	crossRole := *valid
	crossRole.Principal.Role = RoleStaff
	require.False(t, crossRole.Valid(now))

	var nilSession *Session
	require.False(t, nilSession.Valid(now))
}
