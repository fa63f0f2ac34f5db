// Command smartlend-docs renders receipts, closure certificates and EMI
// schedules from exported loan service snapshots, without a running portal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "smartlend-docs",
		Short: "Render SmartLend documents from loan snapshots",
		Long: `Render SmartLend documents offline.

Each command reads the JSON the loan service returns for a loan
(GET /loans/{id}) and its installments (GET /loans/{id}/emis) and writes
the same PDF or schedule the portal would produce.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(receiptCmd())
	cmd.AddCommand(nocCmd())
	cmd.AddCommand(scheduleCmd())
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
