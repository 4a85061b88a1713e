package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-timer/backend/internal/client"
	"github.com/zhouzirui/z-timer/backend/internal/config"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
	"github.com/zhouzirui/z-timer/backend/internal/tracker"
)

var apiURL string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sessionctl",
		Short:        "Record and inspect timed sessions",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "", "sessions API base URL (default $SESSIONS_API_URL or http://localhost:8080)")

	root.AddCommand(newListCmd(), newSaveCmd(), newTrackCmd())
	return root
}

func newClient() (*client.Client, error) {
	if apiURL != "" {
		return client.New(apiURL, nil), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.Client.BaseURL, nil), nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions in the order they were saved",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			records, err := c.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			return printSessions(cmd.OutOrStdout(), records)
		},
	}
}

func newSaveCmd() *cobra.Command {
	var (
		name      string
		seconds   float64
		createdAt string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a session that was timed elsewhere",
		Example: `  sessionctl save --name "deep work" --time 1500
  sessionctl save --name review --time 90 --created-at 2026-10-18T08:00:00Z`,
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			if createdAt != "" {
				parsed, err := session.ParseTimestamp(createdAt)
				if err != nil {
					return fmt.Errorf("--created-at: %w", err)
				}
				started = parsed
			}

			if verr := session.ValidateName(name); verr != nil {
				return errors.New(verr.Message())
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			record, err := c.CreateSession(cmd.Context(), session.NewCandidate(name, seconds, started))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", record.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "session name")
	cmd.Flags().Float64VarP(&seconds, "time", "t", 0, "elapsed seconds")
	cmd.Flags().StringVar(&createdAt, "created-at", "", "start instant (ISO-8601); defaults to now")
	return cmd
}

func newTrackCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Start a timer now, stop it with Enter, then save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			form := tracker.NewForm(tracker.NewTimer(nil), c)
			return runTrack(cmd.Context(), form, name, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "session name")
	return cmd
}

// runTrack drives the form through one start/stop/save cycle.
func runTrack(ctx context.Context, form *tracker.Form, name string, in io.Reader, out io.Writer) error {
	form.SetName(name)
	if msg := form.ErrorMessage(); msg != "" {
		return errors.New(msg)
	}

	timer := form.Timer()
	timer.Start()
	fmt.Fprintf(out, "timing %q since %s, press Enter to stop\n", name, timer.StartedAt().Format(time.Kitchen))

	// On cancellation the reader goroutine stays blocked on stdin until the process exits.
	lines := make(chan struct{}, 1)
	go func() {
		_, _ = bufio.NewReader(in).ReadString('\n')
		lines <- struct{}{}
	}()

	select {
	case <-lines:
	case <-ctx.Done():
	}
	timer.Stop()

	record, err := form.Save(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s (%.0fs)\n", record.ID, record.Time)
	return nil
}

func printSessions(out io.Writer, records []session.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no saved sessions")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIME\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\n", r.ID, strings.TrimSpace(r.Name), r.Time, r.CreatedAt.UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}
