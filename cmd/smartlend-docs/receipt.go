package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

func receiptCmd() *cobra.Command {
	var (
		snap   snapshotFlags
		emiID  int64
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Render the receipt of a settled installment",
		Example: `  smartlend-docs receipt --pack loan-42-emis.json --loan loan-42.json --emi 1017
  smartlend-docs receipt --pack loan-42-emis.json --emi 1017 --out ./receipts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loan, pack, err := snap.load()
			if err != nil {
				return err
			}

			var emi *domain.EmiInstallment
			for i := range pack.Emis {
				if pack.Emis[i].ID == emiID {
					emi = &pack.Emis[i]
					break
				}
			}
			if emi == nil {
				return fmt.Errorf("emi %d: %w", emiID, domain.ErrEmiNotFound)
			}
			if emi.Status == domain.EmiStatusPending {
				return fmt.Errorf("emi %d: %w", emiID, domain.ErrEmiNotPaid)
			}

			doc, err := newRenderer(snap.logoPath).RenderReceipt(emi, loan, pack)
			if err != nil {
				return fmt.Errorf("render receipt: %w", err)
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
	cmd.Flags().Int64Var(&emiID, "emi", 0, "installment id (required)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	_ = cmd.MarkFlagRequired("emi")
	return cmd
}
