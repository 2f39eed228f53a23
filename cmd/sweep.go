package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailpurge/mailpurge/internal/gmail"
	"github.com/mailpurge/mailpurge/internal/google"
	"github.com/mailpurge/mailpurge/internal/instrumentation"
	"github.com/mailpurge/mailpurge/internal/logging"
	"github.com/mailpurge/mailpurge/internal/rate"
	"github.com/mailpurge/mailpurge/internal/sweep"
)

func newSweepCmd() *cobra.Command {
	var (
		query       string
		del         bool
		batch       bool
		showHeaders bool
		force       bool
		markRead    bool
		archiveAll  bool
		pageSize    int64
		rps         int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Search the mailbox and optionally delete the matching messages",
		Long: `Search the mailbox with a Gmail query and optionally delete every match.
Without --delete the run is a dry-run listing: messages are counted (and,
with --show-headers, displayed) but never touched.

Interrupting a run leaves already-deleted messages deleted; there is no
rollback.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !markRead && !archiveAll && query == "" {
				return errors.New("--search is required")
			}

			log := logging.New(os.Stderr, verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg := instrumentation.DefaultConfig()
			cfg.ServiceVersion = version
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("instrumentation config: %w", err)
			}
			provider, err := instrumentation.NewProvider(ctx, cfg)
			if err != nil {
				return fmt.Errorf("init instrumentation: %w", err)
			}
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					log.Warn("metrics flush failed", logging.Err(err))
				}
			}()

			store := google.NewFileTokenStore(tokenPath)
			auth, err := google.NewAuthorizer(credentialsPath, store, google.StdinConsent(os.Stdin, os.Stdout))
			if err != nil {
				return fmt.Errorf("load credentials: %w", err)
			}
			httpClient, err := auth.Client(ctx)
			if err != nil {
				return fmt.Errorf("authenticate: %w", err)
			}
			client, err := gmail.NewClient(ctx, httpClient)
			if err != nil {
				return fmt.Errorf("create gmail client: %w", err)
			}

			svc := sweep.NewService(client, log)
			svc.Metrics = provider.Metrics()
			if pageSize > 0 {
				svc.PageSize = pageSize
			}
			if rps > 0 {
				bucket := rate.NewTokenBucket(rps)
				defer bucket.Stop()
				svc.Rate = bucket
			}

			if archiveAll {
				n, label, err := svc.ArchiveAll(ctx, time.Now)
				if err != nil {
					return fmt.Errorf("archive all mail: %w", err)
				}
				fmt.Printf("Archived %d messages under label %q\n", n, label)
				return nil
			}

			if markRead {
				n, err := svc.MarkAllRead(ctx)
				if err != nil {
					return fmt.Errorf("mark all read: %w", err)
				}
				fmt.Printf("Marked %d messages as read\n", n)
				return nil
			}

			if del && !force && !confirmDelete(query) {
				fmt.Println("Aborted.")
				return nil
			}

			sum, runErr := svc.Run(ctx, sweep.Spec{
				Query:       query,
				Delete:      del,
				Batch:       batch,
				ShowHeaders: showHeaders,
			})
			if err := sum.Write(os.Stdout); err != nil {
				return err
			}
			if runErr != nil {
				return fmt.Errorf("sweep: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "search", "", "Gmail search query (e.g. 'from:foo@example.com older_than:1y')")
	cmd.Flags().BoolVar(&del, "delete", false, "delete the messages matched by --search")
	cmd.Flags().BoolVar(&batch, "batch", false, "delete in chunks of 1000 ids per call instead of one call per message")
	cmd.Flags().BoolVar(&showHeaders, "show-headers", false, "log sender and subject for every matched message")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt before deleting")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark all unread messages as read instead of sweeping")
	cmd.Flags().BoolVar(&archiveAll, "archive-all-mail", false, "move all inbox mail into a timestamped archive label instead of sweeping")
	cmd.Flags().Int64Var(&pageSize, "page-size", 500, "list page size (max 500)")
	cmd.Flags().IntVar(&rps, "rps", 0, "max API requests per second (0 disables rate limiting)")

	return cmd
}

// confirmDelete asks before a destructive run. Non-interactive invocations
// (piped stdin) proceed without a prompt so scripted runs keep working.
func confirmDelete(query string) bool {
	if !isTerminal() {
		return true
	}
	fmt.Printf("Delete all messages matching %q? (yes/no): ", query)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
