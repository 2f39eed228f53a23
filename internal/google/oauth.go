package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
)

// ConsentFunc obtains an authorization code from the user, typically by
// printing the auth URL and reading the code back from stdin.
type ConsentFunc func(authURL string) (string, error)

// Authorizer turns a client secret file and a token cache into an
// authorized HTTP client, running the interactive consent flow when the
// cache is empty or the cached token can no longer be refreshed.
type Authorizer struct {
	Config  *oauth2.Config
	Store   TokenStore
	Consent ConsentFunc
}

// NewAuthorizer reads the installed-application client secret descriptor
// and wires it to the given token store.
//
// The requested scope is full mailbox access; deletion does not work with
// anything narrower. Delete the cached token after changing scopes.
func NewAuthorizer(credentialsPath string, store TokenStore, consent ConsentFunc) (*Authorizer, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gmailapi.MailGoogleComScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}
	return &Authorizer{Config: cfg, Store: store, Consent: consent}, nil
}

// Token returns a usable token, consulting the cache first and falling
// back to interactive consent. Refreshed or newly obtained tokens are
// saved before returning.
func (a *Authorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.Store.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		return a.authorize(ctx)
	case err != nil:
		return nil, err
	}
	if tok.Valid() {
		return tok, nil
	}
	fresh, err := a.Config.TokenSource(ctx, tok).Token()
	if err != nil {
		// Refresh token revoked or expired: start over with consent.
		return a.authorize(ctx)
	}
	if err := a.Store.Save(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (a *Authorizer) authorize(ctx context.Context) (*oauth2.Token, error) {
	if a.Consent == nil {
		return nil, errors.New("no cached token and no consent flow configured")
	}
	authURL := a.Config.AuthCodeURL("state", oauth2.AccessTypeOffline)
	code, err := a.Consent(authURL)
	if err != nil {
		return nil, fmt.Errorf("obtain authorization code: %w", err)
	}
	tok, err := a.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := a.Store.Save(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Client returns an HTTP client that injects the OAuth token into every
// request and persists any token the transport refreshes along the way.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, &savingSource{
		base:  a.Config.TokenSource(ctx, tok),
		last:  tok,
		store: a.Store,
	}), nil
}

// savingSource wraps a refreshing token source and writes every rotated
// token back to the store so the next run skips the consent flow.
type savingSource struct {
	base  oauth2.TokenSource
	last  *oauth2.Token
	store TokenStore
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if err := s.store.Save(tok); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}
	}
	return tok, nil
}

// StdinConsent prints the auth URL to out and reads the authorization code
// from in, matching the installed-application flow of the Google examples.
func StdinConsent(in io.Reader, out io.Writer) ConsentFunc {
	return func(authURL string) (string, error) {
		fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code:\n%v\n", authURL)
		var code string
		if _, err := fmt.Fscan(in, &code); err != nil {
			return "", fmt.Errorf("read authorization code: %w", err)
		}
		return code, nil
	}
}
