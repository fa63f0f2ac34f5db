package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smartlend/smartlend/smartlend-portal/internal/apiclient"
	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// snapshotFlags are the inputs shared by every command
type snapshotFlags struct {
	packPath string
	loanPath string
	logoPath string
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.packPath, "pack", "", "loan-with-EMIs JSON snapshot (required)")
	cmd.Flags().StringVar(&f.loanPath, "loan", "", "loan JSON snapshot")
	_ = cmd.MarkFlagRequired("pack")
}

// load reads the snapshots. The loan is optional and nil when not given.
func (f *snapshotFlags) load() (*domain.Loan, *domain.LoanWithEmiPack, error) {
	data, err := os.ReadFile(f.packPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read pack: %w", err)
	}
	pack, err := apiclient.DecodePack(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode pack %s: %w", f.packPath, err)
	}
	log.Debug().Int64("loan_id", pack.LoanID).Int("emis", len(pack.Emis)).Msg("Loaded EMI snapshot")

	if f.loanPath == "" {
		return nil, pack, nil
	}
	data, err = os.ReadFile(f.loanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read loan: %w", err)
	}
	loan, err := apiclient.DecodeLoan(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode loan %s: %w", f.loanPath, err)
	}
	return loan, pack, nil
}

func newRenderer(logoPath string) *document.Renderer {
	r := document.NewRenderer(document.DefaultBrand())
	if logoPath != "" {
		if err := r.LoadLogo(logoPath); err != nil {
			log.Warn().Err(err).Str("path", logoPath).Msg("Rendering without logo")
		}
	}
	return r
}

// writeDocument stores doc under dir and returns the written path
func writeDocument(dir string, doc *document.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
