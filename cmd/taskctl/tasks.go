package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskboard/pkg/taskclient"
)

var errNothingToUpdate = errors.New("nothing to update, pass at least one field flag")

func listCmd(a *app) *cobra.Command {
	var params taskclient.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Long: `List your tasks, newest first unless sorted otherwise.

Examples:
  taskctl list --status pending --priority high
  taskctl list --overdue
  taskctl list --search report --sort due_date --order asc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}

			board := taskclient.NewBoard(a.session.Client())
			if err := board.Fetch(cmd.Context(), params); err != nil {
				return describe(err)
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), taskclient.TaskPage{Data: board.Tasks(), Meta: board.Meta()})
			}
			return printTasks(cmd.OutOrStdout(), board.Tasks(), board.Meta())
		},
	}

	cmd.Flags().StringVarP(&params.Status, "status", "s", "", "pending, in_progress, completed or cancelled")
	cmd.Flags().StringVarP(&params.Priority, "priority", "P", "", "low, medium or high")
	cmd.Flags().StringVar(&params.DueDate, "due", "", "due on this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&params.Overdue, "overdue", false, "only overdue tasks")
	cmd.Flags().StringVarP(&params.Search, "search", "q", "", "search title and description")
	cmd.Flags().StringVar(&params.SortBy, "sort", "", "created_at, due_date, priority or title")
	cmd.Flags().StringVar(&params.SortOrder, "order", "", "asc or desc")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVarP(&params.PerPage, "limit", "n", 0, "tasks per page")

	return cmd
}

func createCmd(a *app) *cobra.Command {
	var input taskclient.TaskInput
	var description, due string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}

			input.Title = args[0]
			if cmd.Flags().Changed("description") {
				input.Description = &description
			}
			if cmd.Flags().Changed("due") {
				input.DueDate = &due
			}

			task, err := taskclient.NewBoard(a.session.Client()).Create(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}
			return a.printTask(cmd, task, "Created")
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&input.Status, "status", "s", taskclient.StatusPending, "pending, in_progress, completed or cancelled")
	cmd.Flags().StringVarP(&input.Priority, "priority", "P", taskclient.PriorityMedium, "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")

	return cmd
}

func updateCmd(a *app) *cobra.Command {
	var title, description, status, priority, due string
	var clearDescription, clearDue bool

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}

			flags := cmd.Flags()
			patch := taskclient.TaskPatch{ClearDescription: clearDescription, ClearDueDate: clearDue}
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("status") {
				patch.Status = &status
			}
			if flags.Changed("priority") {
				patch.Priority = &priority
			}
			if flags.Changed("due") {
				patch.DueDate = &due
			}
			if patch.Empty() {
				return errNothingToUpdate
			}

			task, err := taskclient.NewBoard(a.session.Client()).Update(cmd.Context(), id, patch)
			if err != nil {
				return describe(err)
			}
			return a.printTask(cmd, task, "Updated")
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "pending, in_progress, completed or cancelled")
	cmd.Flags().StringVarP(&priority, "priority", "P", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")

	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}

			if err := taskclient.NewBoard(a.session.Client()).Delete(cmd.Context(), id); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d.\n", id)
			return nil
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}

			stats, err := a.session.Client().Statistics(cmd.Context())
			if err != nil {
				return describe(err)
			}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			return printStatistics(cmd.OutOrStdout(), stats)
		},
	}
}

func (a *app) printTask(cmd *cobra.Command, task taskclient.Task, verb string) error {
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), task)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s task %d: %s\n", verb, task.ID, task.Title)
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
