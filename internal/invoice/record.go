// Package invoice holds the structured representation of one extracted
// invoice and the normalization rules applied to it before display or
// persistence.
package invoice

import (
	"github.com/shopspring/decimal"
)

// Party is the issuing side of an invoice (the supplier).
type Party struct {
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	TaxID     string `json:"tax_id"`
}

// BilledParty is the party the invoice was issued against.
type BilledParty struct {
	FullName string `json:"full_name"`
	TaxID    string `json:"tax_id"`
}

// LineItem is one product or service line on the invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Installment is one scheduled partial payment against the invoice total.
// DueDate stays in wire format (DD/MM/YYYY) until persistence.
type Installment struct {
	Number  int             `json:"installment_number"`
	DueDate string          `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// Record is the transient, per-upload representation of one invoice. It is
// produced by decoding the model's extraction response, mutated in place by
// EnsureInstallments and the classifier, and then either discarded or handed
// to the persistence agent. The sum of installment amounts is not required
// to equal TotalAmount.
type Record struct {
	Supplier      Party         `json:"supplier"`
	BilledParty   BilledParty   `json:"billed_party"`
	InvoiceNumber string        `json:"invoice_number"`
	// IssueDate is textual, DD/MM/YYYY on the wire.
	IssueDate    string              `json:"issue_date"`
	TotalAmount  decimal.NullDecimal `json:"total_amount"`
	LineItems    []LineItem          `json:"line_items"`
	Installments []Installment       `json:"installments"`
	// Categories are derived by the classifier; advisory until persisted.
	Categories []string `json:"expense_categories,omitempty"`
}
