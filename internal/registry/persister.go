package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/store"
)

// persistProcedure inserts party, classification, movement and installment
// rows in one transaction on the store side.
const persistProcedure = "salvar_nota_fiscal_completa"

// installmentRow is one installment as the procedure's JSON parameter
// expects it; column names belong to the store's schema. Amounts go out as
// bare JSON numbers, not the quoted strings decimal marshals by default.
type installmentRow struct {
	Number  int         `json:"numero_parcela"`
	DueDate *string     `json:"data_vencimento"`
	Amount  json.Number `json:"valor_parcela"`
}

// Persister hands confirmed records to the store's atomic persistence
// procedure.
type Persister struct {
	store store.Store
	log   zerolog.Logger
}

// NewPersister creates a persistence agent.
func NewPersister(st store.Store, log zerolog.Logger) *Persister {
	return &Persister{store: st, log: log}
}

// Save normalizes the record into the procedure's named parameters and
// invokes it. Dates are reformatted to storage format (malformed dates
// become null, not an error), tax IDs are reduced to digits, and only the
// first derived category is persisted. The returned payload is the store's
// confirmation; a failure is terminal for the operation but comes back as
// an error value, never a panic.
func (p *Persister) Save(ctx context.Context, rec *invoice.Record) (json.RawMessage, error) {
	var classification *string
	if len(rec.Categories) > 0 {
		classification = &rec.Categories[0]
	}

	installments := make([]installmentRow, 0, len(rec.Installments))
	for _, inst := range rec.Installments {
		installments = append(installments, installmentRow{
			Number:  inst.Number,
			DueDate: invoice.ToStorageDate(inst.DueDate),
			Amount:  json.Number(inst.Amount.String()),
		})
	}
	installmentsJSON, err := json.Marshal(installments)
	if err != nil {
		return nil, fmt.Errorf("persister: encoding installments: %w", err)
	}

	params := map[string]any{
		"p_forn_razao":      nullable(rec.Supplier.LegalName),
		"p_forn_doc":        nullable(invoice.NormalizeTaxID(rec.Supplier.TaxID)),
		"p_fat_nome":        nullable(rec.BilledParty.FullName),
		"p_fat_doc":         nullable(invoice.NormalizeTaxID(rec.BilledParty.TaxID)),
		"p_class_desc":      classification,
		"p_mov_numnf":       nullable(rec.InvoiceNumber),
		"p_mov_emissao":     invoice.ToStorageDate(rec.IssueDate),
		"p_mov_valor_total": totalAmount(rec.TotalAmount),
		"p_parcelas_json":   string(installmentsJSON),
	}

	payload, err := p.store.CallRPC(ctx, persistProcedure, params)
	if err != nil {
		p.log.Error().Err(err).Str("invoice_number", rec.InvoiceNumber).Msg("Persistence procedure failed")
		return nil, fmt.Errorf("persister: saving record: %w", err)
	}
	return payload, nil
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func totalAmount(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := json.Number(d.Decimal.String())
	return &n
}
