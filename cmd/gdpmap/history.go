package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gdpmap/internal/core"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var prune time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent renders recorded in the database",
		Long: `Show the most recent renders recorded in the render history table.
Requires DATABASE_URL. With --prune, records older than the given age are
deleted first.

Example: gdpmap history --limit 20 --prune 2160h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeHistory, err := openHistory(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer closeHistory()
			if store == nil {
				return core.ErrHistoryNotConfigured
			}

			if prune > 0 {
				n, err := store.Prune(ctx, prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pruned %d records older than %s\n", n, prune)
			}

			recs, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tYEAR\tWITH DATA\tNOT FOUND\tNO DATA\tMS\tOUTPUT")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.CreatedAt.Format(time.RFC3339), r.Year, r.Matched, r.NotFound, r.NoData, r.DurationMs, r.OutputPath)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", core.DefaultHistoryLimit, "Number of records to show")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete records older than this age first")
	return cmd
}
