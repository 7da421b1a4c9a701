package roster

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/courtside/league-night/internal/domain/user"
	"github.com/courtside/league-night/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientVerifyAccessToken_ParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/introspect", r.URL.Path)

		var req map[string]string
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "token-abc", req["token"])

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":       true,
			"user_id":      "pl-ava",
			"display_name": "Ava",
			"role":         "player",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", discardLogger())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Equal(t, "pl-ava", principal.UserID)
	require.Equal(t, user.RolePlayer, principal.Role)
}

func TestClientVerifyAccessToken_MapsAdminRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "adm-rosa",
			"role":    "Admin",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", discardLogger())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	require.NoError(t, err)
	require.True(t, principal.IsAdmin())
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", discardLogger())

	_, err := client.VerifyAccessToken(context.Background(), "stale-token")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestClientVerifyAccessToken_DeniedIntrospection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", discardLogger())

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://localhost:0", "/v1/auth/introspect", discardLogger())

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestStaticVerifier(t *testing.T) {
	t.Parallel()

	verifier := StaticVerifier{}

	principal, err := verifier.VerifyAccessToken(context.Background(), "pl-ava")
	require.NoError(t, err)
	require.Equal(t, user.Principal{UserID: "pl-ava", Role: user.RolePlayer}, principal)

	admin, err := verifier.VerifyAccessToken(context.Background(), "admin:adm-rosa")
	require.NoError(t, err)
	require.Equal(t, user.Principal{UserID: "adm-rosa", Role: user.RoleAdmin}, admin)

	if _, err := verifier.VerifyAccessToken(context.Background(), ""); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}
