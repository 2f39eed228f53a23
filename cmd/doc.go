// Package cmd implements the command-line interface for mailpurge.
//
// This package provides the following commands:
//   - sweep: search the mailbox and optionally delete the matching messages
//   - auth: run the OAuth consent flow and cache the token
//   - version: display version information
//
// The sweep command is the default when no subcommand is specified, so
// `mailpurge --search "..." --delete` works directly.
package cmd
