package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/td0m/tasktracker/internal/app"
	"github.com/td0m/tasktracker/internal/tui"
	"github.com/td0m/tasktracker/pkg/dateinput"
	"github.com/td0m/tasktracker/pkg/task"
)

var errNoTask = errors.New("no such task")

const listDateLayout = "Jan 2, 2006"

func newAddCmd(o *options) *cobra.Command {
	var description, due, priority, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()

			f := task.Fields{
				Title:       strings.Join(args, " "),
				Description: description,
				Category:    category,
				Priority:    task.Medium,
			}
			if f.Due, err = parseDue(due, a.Now()); err != nil {
				return err
			}
			if priority != "" {
				if f.Priority, err = task.ParsePriority(priority); err != nil {
					return err
				}
			}
			t, err := a.Tasks.Add(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVar(&due, "due", "", `due date, e.g. "tomorrow 17:00", "fri", "21/04/2025"`)
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high (default medium)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category, e.g. Work")
	return cmd
}

func newListCmd(o *options) *cobra.Command {
	var filter, search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, most important first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := task.ParseStatus(filter)
			if err != nil {
				return err
			}
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			ts := a.Tasks.View(st, search)
			if len(ts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), tui.EmptyMessage(st, search))
				return nil
			}
			return printTasks(cmd.OutOrStdout(), ts, a.Now())
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, pending or completed")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only tasks whose title, description or category contain this")
	return cmd
}

func printTasks(out io.Writer, ts []task.Task, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tTITLE\tCATEGORY\tDUE")
	for _, t := range ts {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		due := "-"
		if t.Due != nil {
			due = t.Due.Local().Format(listDateLayout)
			if t.Overdue(now) {
				due += " (overdue)"
			}
		}
		category := t.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, done, t.Priority.Normalize(), t.Title, category, due)
	}
	return w.Flush()
}

func newEditCmd(o *options) *cobra.Command {
	var (
		title, description, due, priority, category string
		noDue                                       bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()

			var p task.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("description") {
				p.Description = &description
			}
			if flags.Changed("category") {
				p.Category = &category
			}
			if flags.Changed("priority") {
				pr, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				p.Priority = &pr
			}
			if flags.Changed("due") {
				if p.Due, err = parseDue(due, a.Now()); err != nil {
					return err
				}
				p.ClearDue = p.Due == nil
			}
			if noDue {
				p.ClearDue = true
			}
			return report(cmd, id, "Updated")(a.Tasks.Update(id, p))
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the due date")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category, empty to remove it")
	return cmd
}

func newToggleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			return report(cmd, id, "Toggled")(a.Tasks.ToggleComplete(id))
		},
	}
}

func newRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			return report(cmd, id, "Deleted")(a.Tasks.Delete(id))
		},
	}
}

// report turns the result of a store call on id into the command result
func report(cmd *cobra.Command, id task.ID, verb string) func(bool, error) error {
	return func(ok bool, err error) error {
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", errNoTask, id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s task %d\n", verb, id)
		return nil
	}
}

func newSeedCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add sample tasks to an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			return seed(cmd.OutOrStdout(), a)
		},
	}
}

func seed(out io.Writer, a *app.App) error {
	n, err := a.Seed()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "There are tasks already, nothing added")
		return nil
	}
	fmt.Fprintf(out, "Added %d sample tasks\n", n)
	return nil
}

func newClearCmd(o *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this deletes every task, pass --yes to confirm")
			}
			a, done, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer done()
			if err := a.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All tasks deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

func parseID(s string) (task.ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return task.ID(n), nil
}

func parseDue(s string, now time.Time) (*time.Time, error) {
	due, err := dateinput.Parse(s, now)
	if err != nil {
		return nil, fmt.Errorf("due date %q: %w", s, err)
	}
	return due, nil
}
