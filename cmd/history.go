package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/json-mapper/internal/audit"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

var (
	historyLimit  int
	historyAction string
	historyField  string
	historyOlder  time.Duration
	historyRevs   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit trail of mapping changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		store := audit.NewStore(database)
		ctx := context.Background()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		if historyRevs {
			revs, err := store.Revisions(ctx, historyLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tSAVED\tPATH\tMAPPINGS\tMISMATCHES")
			for _, r := range revs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", r.ID, r.CreatedAt.Format(time.DateTime), r.Path, r.Mappings, r.Mismatches)
			}
			return nil
		}

		entries, err := store.Query(ctx, audit.QueryFilter{
			Action:      mapping.Op(historyAction),
			SourceField: historyField,
			Limit:       historyLimit,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "TIME\tACTOR\tACTION\tSUMMARY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp.Format(time.DateTime), e.Actor, e.Action, e.Summary)
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit entries older than --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := audit.NewStore(database).DeleteBefore(context.Background(), time.Now().Add(-historyOlder))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d audit entries\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of rows")
	historyCmd.Flags().StringVar(&historyAction, "action", "", "only show this action (propose, edit, add, resolve, undo, save, transform)")
	historyCmd.Flags().StringVar(&historyField, "field", "", "only show changes to this source field")
	historyCmd.Flags().BoolVar(&historyRevs, "revisions", false, "list saved mapping revisions instead")
	historyPruneCmd.Flags().DurationVar(&historyOlder, "older-than", 30*24*time.Hour, "age of entries to delete")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
