package document

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

func intPtr(v int) *int { return &v }

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func fixedRenderer() *Renderer {
	r := NewRenderer(DefaultBrand())
	r.SetClock(func() time.Time { return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC) })
	return r
}

func rowMap(rows [][2]string) map[string]string {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r[0]] = r[1]
	}
	return m
}

func samplePack() *domain.LoanWithEmiPack {
	return &domain.LoanWithEmiPack{
		LoanID:              42,
		Principal:           dec("3000"),
		AppliedInterestRate: dec("12"),
		Emis: []domain.EmiInstallment{
			{ID: 101, LoanID: 42, EmiNumber: intPtr(1), Amount: dec("1000"), DueDate: "2025-01-05", Status: domain.EmiStatusPaid, PaymentDate: "2025-01-03", TransactionRef: "TXN-1"},
			{ID: 102, LoanID: 42, EmiNumber: intPtr(2), Amount: dec("1000"), DueDate: "2025-02-05", Status: domain.EmiStatusPaid, PaymentDate: "2025-02-04", TransactionRef: "TXN-2"},
			{ID: 103, LoanID: 42, EmiNumber: intPtr(3), Amount: dec("1050"), DueDate: "2025-03-05", Status: domain.EmiStatusPending},
		},
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "3,050", Amount(dec("3050")))
	assert.Equal(t, "1,234.57", Amount(dec("1234.567")))
	assert.Equal(t, "50", Amount(dec("50.00")))
	assert.Equal(t, "-", Amount(decimal.NullDecimal{}))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "LN00042", LoanRef(42))
	assert.Equal(t, "RCPT-000123", ReceiptNumber(123))
	assert.Equal(t, "RCPT-000123.pdf", ReceiptFilename(123))
	assert.Equal(t, "NOC_000042.pdf", NOCFilename(42))
	assert.Equal(t, "12%", Percent(dec("12")))
	assert.Equal(t, "10.5%", Percent(dec("10.50")))
	assert.Equal(t, "-", Percent(decimal.NullDecimal{}))
	assert.Equal(t, "05 March 2025", LongDate("2025-03-05T10:00:00"))
	assert.Equal(t, "-", LongDate("yesterday"))
	assert.Equal(t, "24 months", Months(intPtr(24)))
	assert.Equal(t, "-", Months(nil))
}

func TestInstallmentLabel(t *testing.T) {
	assert.Equal(t, "2 / 12", InstallmentLabel(intPtr(2), intPtr(12)))
	assert.Equal(t, "2", InstallmentLabel(intPtr(2), nil))
	assert.Equal(t, "- / 12", InstallmentLabel(nil, intPtr(12)))
	assert.Equal(t, "-", InstallmentLabel(nil, nil))
}

func TestReceiptRows(t *testing.T) {
	pack := samplePack()
	loan := &domain.Loan{ID: 42, CustomerName: "Asha Rao"}

	rows := ReceiptRows(&pack.Emis[1], loan, pack)
	require.Len(t, rows, 13)
	assert.Equal(t, "Receipt No.", rows[0][0])
	assert.Equal(t, "Remaining balance after this payment", rows[12][0])

	m := rowMap(rows)
	assert.Equal(t, "RCPT-000102", m["Receipt No."])
	assert.Equal(t, "TXN-2", m["Transaction Ref ID"])
	assert.Equal(t, "LN00042", m["Loan ID"])
	assert.Equal(t, "2 / 3", m["EMI No."])
	assert.Equal(t, "1,000", m["EMI Amount"])
	assert.Equal(t, "04 February 2025", m["Paid On"])
	assert.Equal(t, "PAID", m["Status"])
	assert.Equal(t, "12%", m["Interest"])
	assert.Equal(t, "3 months", m["Tenure"])
	assert.Equal(t, "3,000", m["Principal"])
	assert.Equal(t, "50", m["Interest amount"])
	assert.Equal(t, "3,050", m["Total repayable amount"])
	assert.NotEqual(t, "-", m["Remaining balance after this payment"])
}

func TestReceiptRows_ExplicitBalance(t *testing.T) {
	pack := samplePack()
	pack.Emis[1].RemainingBalance = dec("1049.99")

	m := rowMap(ReceiptRows(&pack.Emis[1], nil, pack))
	assert.Equal(t, "1,049.99", m["Remaining balance after this payment"])
}

func TestReceiptRows_MissingAggregates(t *testing.T) {
	emi := &domain.EmiInstallment{ID: 9, Status: domain.EmiStatusPaid}
	pack := &domain.LoanWithEmiPack{LoanID: 5}

	m := rowMap(ReceiptRows(emi, nil, pack))
	assert.Equal(t, "LN00005", m["Loan ID"])
	assert.Equal(t, "-", m["EMI No."])
	assert.Equal(t, "-", m["EMI Amount"])
	assert.Equal(t, "-", m["Paid On"])
	assert.Equal(t, "-", m["Transaction Ref ID"])
	assert.Equal(t, "-", m["Total repayable amount"])
	assert.Equal(t, "-", m["Remaining balance after this payment"])
}

func TestRenderReceipt(t *testing.T) {
	pack := samplePack()
	loan := &domain.Loan{ID: 42, CustomerName: "Asha Rao"}

	doc, err := fixedRenderer().RenderReceipt(&pack.Emis[0], loan, pack)
	require.NoError(t, err)
	assert.Equal(t, "RCPT-000101.pdf", doc.Filename)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
}

func TestRenderReceipt_SparsePackDoesNotFail(t *testing.T) {
	doc, err := fixedRenderer().RenderReceipt(&domain.EmiInstallment{ID: 3}, nil, &domain.LoanWithEmiPack{})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)

	doc, err = fixedRenderer().RenderReceipt(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "RCPT-000000.pdf", doc.Filename)
}

func TestClosureRows(t *testing.T) {
	pack := samplePack()
	pack.Emis[2].Status = domain.EmiStatusPaid
	pack.Emis[2].PaymentDate = "2025-03-02"
	loan := &domain.Loan{ID: 42, CustomerName: "Asha Rao", SubmittedAt: "2024-12-20T09:00:00", Status: domain.LoanStatusClosed}

	m := rowMap(fixedRenderer().ClosureRows(loan, pack, pack.Emis))
	assert.Equal(t, "LN00042", m["Loan ID"])
	assert.Equal(t, "Asha Rao", m["Borrower Name"])
	assert.Equal(t, "3,000", m["Loan Amount"])
	assert.Equal(t, "20 December 2024", m["Loan Start Date"])
	assert.Equal(t, "02 March 2025", m["Loan Closed Date"])
	assert.Equal(t, "3", m["Total EMIs Paid"])
	assert.Equal(t, "12%", m["Interest Rate"])
	assert.Equal(t, "3 months", m["Tenure"])
	assert.Equal(t, "3,050", m["Total Paid Amount"])
}

func TestClosureRows_Fallbacks(t *testing.T) {
	emis := []domain.EmiInstallment{
		{ID: 1, DueDate: "2025-01-05", Status: domain.EmiStatusPending},
		{ID: 2, DueDate: "2025-02-05", Status: domain.EmiStatusPending},
	}

	m := rowMap(fixedRenderer().ClosureRows(&domain.Loan{ID: 7}, nil, emis))
	assert.Equal(t, "N/A", m["Borrower Name"])
	assert.Equal(t, "05 January 2025", m["Loan Start Date"])
	assert.Equal(t, "30 June 2025", m["Loan Closed Date"])
	assert.Equal(t, "2", m["Total EMIs Paid"])
	assert.Equal(t, "-", m["Loan Amount"])
}

func TestRenderClosureCertificate(t *testing.T) {
	pack := samplePack()
	loan := &domain.Loan{ID: 42, CustomerName: "Asha Rao", Status: domain.LoanStatusClosed, ClosedAt: "2025-03-10"}

	doc, err := fixedRenderer().RenderClosureCertificate(loan, pack, pack.Emis)
	require.NoError(t, err)
	assert.Equal(t, "NOC_000042.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
}

func TestRenderWithLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 600, 300))
	for x := 0; x < 600; x++ {
		img.Set(x, x%300, color.RGBA{R: 3, G: 61, B: 107, A: 255})
	}

	r := fixedRenderer()
	require.NoError(t, r.SetLogo(img))
	assert.NotEmpty(t, r.logo)

	doc, err := r.RenderClosureCertificate(&domain.Loan{ID: 1}, nil, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
}

func TestLoadLogo_MissingFile(t *testing.T) {
	err := fixedRenderer().LoadLogo("/nonexistent/logo.png")
	assert.Error(t, err)
}
