package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/reconcile"
)

func nocCmd() *cobra.Command {
	var (
		snap   snapshotFlags
		outDir string
		force  bool
	)

	cmd := &cobra.Command{
		Use:     "noc",
		Short:   "Render the no-objection certificate of a cleared loan",
		Example: `  smartlend-docs noc --pack loan-42-emis.json --loan loan-42.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loan, pack, err := snap.load()
			if err != nil {
				return err
			}
			if loan == nil {
				loan = &domain.Loan{ID: pack.LoanID}
			}
			if !force && !reconcile.IsCleared(loan, pack) {
				return fmt.Errorf("loan %d: %w", loan.ID, domain.ErrLoanNotCleared)
			}

			doc, err := newRenderer(snap.logoPath).RenderClosureCertificate(loan, pack, pack.Emis)
			if err != nil {
				return fmt.Errorf("render closure certificate: %w", err)
			}
			path, err := writeDocument(outDir, doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	snap.register(cmd)
	cmd.Flags().StringVar(&snap.logoPath, "logo", "", "letterhead logo image")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "render even when the loan is not cleared")
	return cmd
}
