package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// memStore is an in-memory TokenStore for exercising the authorizer
// without touching the filesystem.
type memStore struct {
	tok   *oauth2.Token
	saves int
}

func (m *memStore) Load() (*oauth2.Token, error) {
	if m.tok == nil {
		return nil, ErrNoToken
	}
	return m.tok, nil
}

func (m *memStore) Save(tok *oauth2.Token) error {
	m.tok = tok
	m.saves++
	return nil
}

// newTokenEndpoint serves the OAuth token exchange with a fixed response.
func newTokenEndpoint(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "exchanged-access",
			"refresh_token": "exchanged-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthorizer(store TokenStore, consent ConsentFunc, tokenURL string) *Authorizer {
	return &Authorizer{
		Config: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Endpoint:     oauth2.Endpoint{AuthURL: "https://auth.example/o/auth", TokenURL: tokenURL},
			RedirectURL:  "http://localhost",
		},
		Store:   store,
		Consent: consent,
	}
}

func TestAuthorizerUsesCachedToken(t *testing.T) {
	store := &memStore{tok: &oauth2.Token{
		AccessToken: "cached",
		Expiry:      time.Now().Add(time.Hour),
	}}
	consentCalled := false
	auth := newTestAuthorizer(store, func(string) (string, error) {
		consentCalled = true
		return "", nil
	}, "https://unused.example/token")

	tok, err := auth.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", tok.AccessToken)
	assert.False(t, consentCalled)
	assert.Zero(t, store.saves)
}

func TestAuthorizerRunsConsentWhenCacheEmpty(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	store := &memStore{}
	var gotAuthURL string
	auth := newTestAuthorizer(store, func(authURL string) (string, error) {
		gotAuthURL = authURL
		return "the-code", nil
	}, endpoint.URL)

	tok, err := auth.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchanged-access", tok.AccessToken)
	assert.Contains(t, gotAuthURL, "https://auth.example/o/auth")
	assert.Contains(t, gotAuthURL, "access_type=offline")
	assert.Equal(t, 1, store.saves)
	require.NotNil(t, store.tok)
	assert.Equal(t, "exchanged-refresh", store.tok.RefreshToken)
}

func TestAuthorizerNoConsentConfigured(t *testing.T) {
	auth := newTestAuthorizer(&memStore{}, nil, "https://unused.example/token")

	_, err := auth.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cached token")
}

func TestAuthorizerConsentError(t *testing.T) {
	auth := newTestAuthorizer(&memStore{}, func(string) (string, error) {
		return "", errors.New("user gave up")
	}, "https://unused.example/token")

	_, err := auth.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization code")
}

func TestAuthorizerRefreshesExpiredToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	store := &memStore{tok: &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "still-good",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	auth := newTestAuthorizer(store, nil, endpoint.URL)

	tok, err := auth.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchanged-access", tok.AccessToken)
	// The refreshed token must be written back for the next run.
	assert.Equal(t, 1, store.saves)
}

type staticSource struct{ tok *oauth2.Token }

func (s staticSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestSavingSourcePersistsRotatedTokens(t *testing.T) {
	store := &memStore{}
	first := &oauth2.Token{AccessToken: "one"}
	src := &savingSource{base: staticSource{tok: first}, last: first, store: store}

	_, err := src.Token()
	require.NoError(t, err)
	assert.Zero(t, store.saves, "unchanged token must not be rewritten")

	src.base = staticSource{tok: &oauth2.Token{AccessToken: "two"}}
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "two", tok.AccessToken)
	assert.Equal(t, 1, store.saves)
}

func TestStdinConsent(t *testing.T) {
	var out bytes.Buffer
	consent := StdinConsent(strings.NewReader("pasted-code\n"), &out)

	code, err := consent("https://accounts.example/consent")
	require.NoError(t, err)
	assert.Equal(t, "pasted-code", code)
	assert.Contains(t, out.String(), "https://accounts.example/consent")
}
