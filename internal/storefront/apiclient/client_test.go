//go:build unit

package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"metromobiles/internal/storefront/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("プロフィールはGET /auth/profileから取得する", func(t *testing.T) {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(apiclient.Profile{ID: "u1", Name: "Asha", Email: "asha@example.com"})
		}))
		defer server.Close()

		profile, err := apiclient.New(server.URL).FetchProfile(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "/auth/profile", gotPath)
		assert.Equal(t, "Bearer token-1", gotAuth)
		assert.Equal(t, "Asha", profile.Name)
	})

	t.Run("401はErrUnauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := apiclient.New(server.URL).FetchProfile(ctx, "stale-token")
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})
}
