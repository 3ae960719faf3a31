// Package cli is the studyboard command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/studyboard/pkg/clock"
)

type rootOptions struct {
	configPath string
	seedFile   string

	clock clock.Clock
	// calendarOptions replace the stored OAuth token when set.
	calendarOptions []option.ClientOption
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studyboard",
		Short: "Academic tasks, exams, projects and classes in one place",
		Long: `studyboard keeps every deadline of a semester in one prioritized task list.

Assignments, projects and hackathons mirror themselves into tasks; each task's
status and priority are derived from its deadline, progress and category.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/studyboard/config.json)")
	rootCmd.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "Seed bundle to load instead of the configured one")

	rootCmd.AddCommand(newDashboardCmd(opts))
	rootCmd.AddCommand(newTasksCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))
	rootCmd.AddCommand(newCalendarCmd(opts))
	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd := newRootCmd(&rootOptions{clock: clock.Real()})
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
