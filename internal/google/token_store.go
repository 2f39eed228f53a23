package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNoToken reports that the token cache is empty.
var ErrNoToken = errors.New("no cached token")

// TokenStore loads and saves the cached OAuth token.
type TokenStore interface {
	// Load returns the cached token, or ErrNoToken when none exists.
	Load() (*oauth2.Token, error)

	// Save persists the token for subsequent runs.
	Save(tok *oauth2.Token) error
}

// FileTokenStore keeps the token as a JSON file, written after the first
// successful consent and rewritten whenever the token is refreshed.
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore returns a store backed by the file at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

// Load reads and decodes the cached token.
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", s.Path, err)
	}
	return tok, nil
}

// Save writes the token with owner-only permissions, creating the parent
// directory if needed.
func (s *FileTokenStore) Save(tok *oauth2.Token) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// HasToken reports whether a cached token file exists at path.
func HasToken(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
