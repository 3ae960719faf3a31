package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/studyboard/pkg/auth"
	"github.com/harrisonrobin/studyboard/pkg/colors"
	"github.com/harrisonrobin/studyboard/pkg/google"
	"github.com/harrisonrobin/studyboard/pkg/index"
	"github.com/harrisonrobin/studyboard/pkg/overdue"
)

// mirror is an open calendar plus the local state it keeps between runs.
type mirror struct {
	client  *google.CalendarClient
	index   *index.EventIndex
	palette *colors.Palette
	watch   *overdue.Table
}

func (opts *rootOptions) openMirror(ctx context.Context, calendarName string) (*mirror, error) {
	m := &mirror{}
	var err error

	if m.index, err = index.NewEventIndex(); err != nil {
		log.Printf("Warning: failed to initialize event index: %v", err)
		m.index = nil
	}
	palettePath, err := colors.DefaultPath()
	if err == nil {
		m.palette, err = colors.NewPalette(palettePath)
	}
	if err != nil {
		log.Printf("Warning: could not load color palette: %v", err)
		m.palette, _ = colors.NewPalette("")
	}
	if m.watch, err = overdue.NewTable(); err != nil {
		log.Printf("Warning: failed to initialize overdue sweep table: %v", err)
		m.watch = nil
	}

	if opts.calendarOptions != nil {
		m.client, err = google.Connect(ctx, calendarName, m.index, m.palette, m.watch, opts.calendarOptions...)
	} else {
		m.client, err = google.NewClient(ctx, calendarName, m.index, m.palette, m.watch)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating Google Calendar client: %w", err)
	}
	return m, nil
}

func (m *mirror) save() {
	if m.index != nil {
		if err := m.index.Save(); err != nil {
			log.Printf("Warning: failed to save event index: %v", err)
		}
	}
	if err := m.palette.Save(); err != nil {
		log.Printf("Warning: failed to save color palette: %v", err)
	}
	if m.watch != nil {
		if err := m.watch.Save(); err != nil {
			log.Printf("Warning: failed to save sweep table: %v", err)
		}
	}
}

// syncSession mirrors every task of s into the configured calendar.
func (opts *rootOptions) syncSession(ctx context.Context, cmd *cobra.Command, s *session, calendarName string) error {
	m, err := opts.openMirror(ctx, calendarName)
	if err != nil {
		return err
	}
	defer m.save()

	s.store().Refresh()
	report := m.client.Reconcile(ctx, s.store().Tasks())
	fmt.Fprintf(cmd.OutOrStdout(), "Synced %s: %s\n", calendarName, report)
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d tasks failed to sync", len(report.Failed))
	}
	return nil
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	var calendarName string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Mirror the task list into Google Calendar",
	}
	cmd.PersistentFlags().StringVar(&calendarName, "calendar", "", "Google Calendar name to sync with (overrides config)")

	selected := func(s *session) string {
		if calendarName != "" {
			return calendarName
		}
		return s.cfg.Calendar
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Create, update and delete events to match the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession()
			if err != nil {
				return err
			}
			return opts.syncSession(cmd.Context(), cmd, s, selected(s))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Flag events whose deadline passed since the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			name := calendarName
			if name == "" {
				name = cfg.Calendar
			}
			m, err := opts.openMirror(cmd.Context(), name)
			if err != nil {
				return err
			}
			defer m.save()

			n, err := m.client.Sweep(cmd.Context(), opts.clock.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "Flagged %d overdue events\n", n)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Calendar, replacing any stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenFile, err := auth.Reauthorize(cmd.Context(), google.Scopes)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			log.Printf("Authentication successful! Token saved to %s", tokenFile)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set NAME",
		Short: "Set the default Google Calendar name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg.Calendar = args[0]
			if err := opts.saveConfig(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default calendar set to: %s\n", args[0])
			return nil
		},
	})
	return cmd
}
