package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := New(NewMemoryStorage(), NewMemorySessions(), logger.Nop())
	ts := httptest.NewServer(srv.Router(nil))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func registerUser(t *testing.T, ts *httptest.Server, email, password string) sessionResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/auth/register", credentials{
		Email: email, Password: password, DisplayName: "Test User",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotEmpty(t, session.Token)
	return session
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLogin(t *testing.T) {
	ts := newTestServer(t)
	session := registerUser(t, ts, "me@example.com", "secret-pass")
	assert.Equal(t, "me@example.com", session.User.Email)

	// Duplicate email is rejected.
	resp := postJSON(t, ts.URL+"/api/auth/register", credentials{Email: "ME@example.com", Password: "secret-pass"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "email match is case-insensitive")

	// Correct password logs in.
	resp = postJSON(t, ts.URL+"/api/auth/login", credentials{Email: "me@example.com", Password: "secret-pass"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong password does not.
	resp = postJSON(t, ts.URL+"/api/auth/login", credentials{Email: "me@example.com", Password: "wrong-pass"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown account gets the same answer as a bad password.
	resp = postJSON(t, ts.URL+"/api/auth/login", credentials{Email: "nobody@example.com", Password: "whatever1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/auth/register", credentials{Email: "x@example.com", Password: "short"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/auth/register", map[string]string{"email": "x@example.com"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func authedRequest(t *testing.T, method, url, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestStateRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	session := registerUser(t, ts, "me@example.com", "secret-pass")

	// Fresh account has no document yet.
	resp := authedRequest(t, http.MethodGet, ts.URL+"/api/state", session.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	doc := []byte(`{"transactions":[],"preferences":{"language":"en","theme":"dark","activeView":"dashboard"}}`)
	resp = authedRequest(t, http.MethodPut, ts.URL+"/api/state", session.Token, doc)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, ts.URL+"/api/state", session.Token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got, "preferences")

	// A second write overwrites the first wholesale.
	doc2 := []byte(`{"transactions":[{"id":"t1"}]}`)
	resp = authedRequest(t, http.MethodPut, ts.URL+"/api/state", session.Token, doc2)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, ts.URL+"/api/state", session.Token, nil)
	defer resp.Body.Close()
	var second map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
	assert.NotContains(t, second, "preferences", "last writer wins, whole document")
}

func TestState_RequiresSession(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/state", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, ts.URL+"/api/state", "bogus-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	session := registerUser(t, ts, "me@example.com", "secret-pass")

	resp := authedRequest(t, http.MethodPost, ts.URL+"/api/auth/logout", session.Token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = authedRequest(t, http.MethodGet, ts.URL+"/api/state", session.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPutState_RejectsGarbage(t *testing.T) {
	ts := newTestServer(t)
	session := registerUser(t, ts, "me@example.com", "secret-pass")

	resp := authedRequest(t, http.MethodPut, ts.URL+"/api/state", session.Token, []byte("not json"))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMemoryStorageIsolation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage()
	require.NoError(t, st.SaveDocument(ctx, "u1", json.RawMessage(`{"a":1}`)))

	doc, err := st.Document(ctx, "u1")
	require.NoError(t, err)
	doc[0] = 'X' // mutating the returned copy must not touch the stored blob

	again, err := st.Document(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"a":1}`), again)

	_, err = st.Document(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}
