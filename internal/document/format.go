package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/smartlend/smartlend/smartlend-portal/internal/util"
)

const placeholder = "-"

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Amount formats money with Indian digit grouping and at most two
// fraction digits. Unknown amounts render as "-".
func Amount(d decimal.NullDecimal) string {
	if !d.Valid {
		return placeholder
	}
	return indianPrinter.Sprintf("%v", number.Decimal(d.Decimal.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Percent renders an interest rate as "12%" or "10.5%"
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return placeholder
	}
	return d.Decimal.String() + "%"
}

// LongDate renders an ISO date as "05 March 2025"
func LongDate(s string) string {
	t, ok := util.ParseDate(s)
	if !ok {
		return placeholder
	}
	return longTime(t)
}

func longTime(t time.Time) string {
	return t.Format("02 January 2006")
}

// LoanRef is the customer-facing loan reference, e.g. LN00042
func LoanRef(id int64) string {
	return fmt.Sprintf("LN%05d", id)
}

// ReceiptNumber is the receipt reference for an EMI id, e.g. RCPT-000123
func ReceiptNumber(emiID int64) string {
	return fmt.Sprintf("RCPT-%06d", emiID)
}

// ReceiptFilename is the download name of an EMI receipt
func ReceiptFilename(emiID int64) string {
	return ReceiptNumber(emiID) + ".pdf"
}

// NOCFilename is the download name of a closure certificate
func NOCFilename(loanID int64) string {
	return fmt.Sprintf("NOC_%06d.pdf", loanID)
}

// InstallmentLabel renders "k / n", "k", "- / n" or "-"
func InstallmentLabel(k, n *int) string {
	switch {
	case k != nil && n != nil:
		return fmt.Sprintf("%d / %d", *k, *n)
	case k != nil:
		return fmt.Sprintf("%d", *k)
	case n != nil:
		return fmt.Sprintf("- / %d", *n)
	}
	return placeholder
}

// Months renders a tenure as "24 months"
func Months(n *int) string {
	if n == nil {
		return placeholder
	}
	return fmt.Sprintf("%d months", *n)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
