package invoice

import (
	"fmt"
	"strings"
	"time"
)

// EnsureInstallments guarantees the record carries at least one installment.
// When none were extracted it synthesizes a single installment: number 1,
// due one calendar month after the issue date, for the full invoice amount.
//
// The returned error is a non-fatal warning (missing or unparseable issue
// date or total); the record is left untouched and still flows forward.
func EnsureInstallments(rec *Record) (synthesized bool, warn error) {
	if len(rec.Installments) > 0 {
		return false, nil
	}

	if !rec.TotalAmount.Valid {
		return false, fmt.Errorf("cannot generate default installment: total_amount is missing")
	}
	issued, err := time.Parse(WireDateFormat, strings.TrimSpace(rec.IssueDate))
	if err != nil {
		return false, fmt.Errorf("cannot generate default installment: invalid issue_date %q", rec.IssueDate)
	}

	rec.Installments = []Installment{{
		Number:  1,
		DueDate: addMonthsClamped(issued, 1).Format(WireDateFormat),
		Amount:  rec.TotalAmount.Decimal,
	}}
	return true, nil
}
