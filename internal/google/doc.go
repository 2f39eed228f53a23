// Package google implements the credential store for the Gmail API.
//
// It loads the OAuth2 "installed application" client secret descriptor,
// caches the user token as JSON on disk, runs the interactive consent flow
// when no usable token exists and transparently refreshes expired access
// tokens, writing refreshed tokens back to the cache.
//
// The TokenStore interface decouples token persistence from the rest of
// the program so the authorization logic can be tested without file I/O.
package google
