package invoice

import (
	"strings"
	"time"
)

const (
	// WireDateFormat is how dates appear in extracted invoices (DD/MM/YYYY).
	WireDateFormat = "02/01/2006"
	// StorageDateFormat is what the store's DATE columns expect (YYYY-MM-DD).
	StorageDateFormat = "2006-01-02"
)

// ToStorageDate converts a wire-format date to storage format. Malformed or
// missing dates become nil, never an error; the store persists them as NULL.
func ToStorageDate(s string) *string {
	t, err := time.Parse(WireDateFormat, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	out := t.Format(StorageDateFormat)
	return &out
}

// NormalizeTaxID strips every non-digit character from a CPF/CNPJ-style
// document so lookups and persistence always key on the bare digits.
func NormalizeTaxID(doc string) string {
	var b strings.Builder
	for _, r := range doc {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// addMonthsClamped adds calendar months, clamping to the last day of the
// target month (31 Jan + 1 month = 28/29 Feb). time.AddDate would roll the
// overflow into March instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
