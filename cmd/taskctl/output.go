package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"taskboard/pkg/taskclient"
)

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTasks(w io.Writer, tasks []taskclient.Task, meta taskclient.PageMeta) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = *t.DueDate
			if t.IsOverdue {
				due += " (overdue)"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, due)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nPage %d of %d, %d tasks total\n", meta.CurrentPage, meta.LastPage, meta.Total)
	return err
}

func printStatistics(w io.Writer, stats taskclient.Statistics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Pending\t%d\n", stats.Pending)
	fmt.Fprintf(tw, "In progress\t%d\n", stats.InProgress)
	fmt.Fprintf(tw, "Completed\t%d\n", stats.Completed)
	fmt.Fprintf(tw, "Overdue\t%d\n", stats.Overdue)
	return tw.Flush()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
