package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/studyboard/pkg/model"
	"github.com/harrisonrobin/studyboard/pkg/orgmode"
	"github.com/harrisonrobin/studyboard/pkg/taskwarrior"
)

type importOptions struct {
	sync     bool
	calendar string
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var o importOptions
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add tasks from Org-mode files or Taskwarrior",
	}
	cmd.PersistentFlags().BoolVar(&o.sync, "sync", false, "Mirror the resulting task list into Google Calendar")
	cmd.PersistentFlags().StringVar(&o.calendar, "calendar", "", "Google Calendar name to sync with (overrides config)")

	var tag string
	orgCmd := &cobra.Command{
		Use:   "org FILE...",
		Short: "Import TODO and DONE headlines with a deadline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headlines, err := orgmode.ParseFiles(args)
			if err != nil {
				return err
			}
			if tag != "" {
				headlines = orgmode.FilterTasks(headlines, tag)
			}
			return opts.importInputs(cmd, o, orgmode.Inputs(headlines))
		},
	}
	orgCmd.Flags().StringVar(&tag, "tag", "", "Only import headlines carrying this tag")
	cmd.AddCommand(orgCmd)

	var file string
	twCmd := &cobra.Command{
		Use:   "taskwarrior [FILTER...]",
		Short: "Import tasks from `task export`, or from an export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := taskwarrior.NewClient()
			var tasks []taskwarrior.Task
			var err error
			switch file {
			case "":
				tasks, err = client.GetTasks(args)
			case "-":
				tasks, err = client.ParseTasks(cmd.InOrStdin())
			default:
				var f *os.File
				if f, err = os.Open(file); err == nil {
					tasks, err = client.ParseTasks(f)
					f.Close()
				}
			}
			if err != nil {
				return err
			}
			return opts.importInputs(cmd, o, taskwarrior.ToInputs(tasks))
		},
	}
	twCmd.Flags().StringVar(&file, "file", "", "Read an export file instead of running task (- for stdin)")
	cmd.AddCommand(twCmd)
	return cmd
}

func (opts *rootOptions) importInputs(cmd *cobra.Command, o importOptions, inputs []model.TaskInput) error {
	s, err := opts.openSession()
	if err != nil {
		return err
	}

	imported := make([]model.Task, 0, len(inputs))
	added := 0
	for _, in := range inputs {
		t, isNew := s.importTask(in)
		if isNew {
			added++
		}
		imported = append(imported, t)
	}
	if err := s.saveImports(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d new)\n", len(imported), added)
	renderTasks(cmd.OutOrStdout(), imported, opts.clock.Now())

	if !o.sync {
		return nil
	}
	name := o.calendar
	if name == "" {
		name = s.cfg.Calendar
	}
	return opts.syncSession(cmd.Context(), cmd, s, name)
}
