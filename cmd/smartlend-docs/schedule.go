package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/schedule"
)

func scheduleCmd() *cobra.Command {
	var (
		snap     snapshotFlags
		filter   schedule.Filter
		expanded bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print an EMI schedule with its payment gate",
		Example: `  smartlend-docs schedule --pack loan-42-emis.json
  smartlend-docs schedule --pack loan-42-emis.json --status pending --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, pack, err := snap.load()
			if err != nil {
				return err
			}

			ordered := schedule.Order(pack.Emis)
			view := schedule.Window(ordered, filter.Apply(ordered), expanded)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NO.\tID\tDUE\tAMOUNT\tSTATUS\tACTION")
			for _, row := range view.Rows {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
					row.DisplayNumber,
					row.ID,
					document.LongDate(row.DueDate),
					document.Amount(row.Amount),
					row.Status,
					action(row),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d matching installments (%d total)\n", len(view.Rows), view.Filtered, view.Total)
			return nil
		},
	}

	snap.register(cmd)
	cmd.Flags().StringVar(&filter.Status, "status", "", "PENDING, PAID, LATE or ALL")
	cmd.Flags().StringVar(&filter.DueFrom, "from", "", "earliest due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.DueTo, "to", "", "latest due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&expanded, "all", false, "show every matching installment")
	return cmd
}

func action(row schedule.Row) string {
	switch {
	case row.PayableNow:
		return "pay"
	case row.Locked:
		return "locked"
	case row.ReceiptReady:
		return "receipt"
	}
	return "-"
}
