package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yardstick/pkg/types"
)

func newLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect saved results",
	}
	cmd.AddCommand(newLogListCmd(a))
	cmd.AddCommand(newLogShowCmd(a))
	cmd.AddCommand(newLogDeleteCmd(a))
	return cmd
}

func newLogListCmd(a *app) *cobra.Command {
	var filter types.EntryFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved results, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []*types.Entry
			err := a.withLogbook(func(lb types.Logbook) error {
				var err error
				entries, err = lb.List(filter)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, entries, entryTable(entries))
		},
	}
	cmd.Flags().StringVar(&filter.Operation, "operation", "", "only entries of this operation (convert, calc, format, parse)")
	cmd.Flags().StringVar(&filter.Unit, "unit", "", "only entries whose result is in this unit")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "only the most recent N entries")
	return cmd
}

func newLogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry *types.Entry
			err := a.withLogbook(func(lb types.Logbook) error {
				var err error
				entry, err = lb.Get(args[0])
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd, entry, entryDetail(entry))
		},
	}
}

func newLogDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withLogbook(func(lb types.Logbook) error {
				return lb.Delete(args[0])
			})
			if err != nil {
				return err
			}
			a.log.Info("entry deleted", "id", args[0])
			return a.emit(cmd, map[string]string{"deleted": args[0]}, "deleted "+args[0])
		},
	}
}

func entryTable(entries []*types.Entry) string {
	if len(entries) == 0 {
		return "no entries"
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tOPERATION\tEXPRESSION\tRESULT\tFORMATTED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.EntryID, e.CreatedAt.Local().Format(time.DateTime), e.Operation, e.Expression, e.Result, e.Formatted)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

func entryDetail(e *types.Entry) string {
	lines := []string{
		"id:          " + e.EntryID,
		"created:     " + e.CreatedAt.Local().Format(time.RFC3339),
		"operation:   " + e.Operation,
		"expression:  " + e.Expression,
		"result:      " + e.Result,
		"millimeters: " + e.Millimeters,
	}
	if e.Formatted != "" {
		lines = append(lines, "formatted:   "+e.Formatted)
	}
	return strings.Join(lines, "\n")
}
