package syncer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
)

func TestClient_RoundTrip(t *testing.T) {
	var stored []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodPut:
			body, err := json.Marshal(json.RawMessage(mustRead(t, r)))
			require.NoError(t, err)
			stored = body
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if stored == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(stored)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")

	// First load: nothing stored yet, defaults come back.
	doc, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.SavingsPlan)
	assert.Empty(t, doc.Transactions)

	doc.Preferences.Theme = "light"
	require.NoError(t, c.Save(context.Background(), doc))

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "light", got.Preferences.Theme)
}

func TestClient_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong")
	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	err = c.Save(context.Background(), model.NewDocument())
	require.Error(t, err)
}

func mustRead(t *testing.T, r *http.Request) []byte {
	t.Helper()
	defer r.Body.Close()
	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	return raw
}
