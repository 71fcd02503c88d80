// Package registry cross-references extracted records against the external
// persisted store and hands confirmed records to its atomic persistence
// procedure.
package registry

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/store"
)

const (
	partiesTable           = "pessoas"
	partyIDColumn          = "idPessoas"
	classificationTable    = "classificacao"
	classificationIDColumn = "idClassificacao"
	expenseType            = "DESPESA"
)

// LookupResult reports whether a registry entry exists and, when it does,
// its identifier.
type LookupResult struct {
	Exists bool  `json:"exists"`
	ID     int64 `json:"id,omitempty"`
}

// Verification is the advisory registry cross-check shown to the user before
// persistence. It never blocks saving.
type Verification struct {
	Supplier       LookupResult `json:"supplier"`
	BilledParty    LookupResult `json:"billed_party"`
	Classification LookupResult `json:"classification"`
}

// Verifier performs existence lookups against the store.
type Verifier struct {
	store store.Store
	log   zerolog.Logger
}

// NewVerifier creates a registry verifier.
func NewVerifier(st store.Store, log zerolog.Logger) *Verifier {
	return &Verifier{store: st, log: log}
}

// Verify looks up both parties by normalized tax ID and the record's first
// derived category by description. The three lookups are independent: a
// store error on one entry is logged and reported as not found without
// aborting the others.
func (v *Verifier) Verify(ctx context.Context, rec *invoice.Record) Verification {
	var out Verification
	out.Supplier = v.lookupParty(ctx, rec.Supplier.TaxID)
	out.BilledParty = v.lookupParty(ctx, rec.BilledParty.TaxID)
	if len(rec.Categories) > 0 {
		out.Classification = v.lookupClassification(ctx, rec.Categories[0])
	}
	return out
}

func (v *Verifier) lookupParty(ctx context.Context, taxID string) LookupResult {
	doc := invoice.NormalizeTaxID(taxID)
	if doc == "" {
		// Nothing to key on; skip the query entirely.
		return LookupResult{}
	}

	rows, err := v.store.SelectEq(ctx, partiesTable, partyIDColumn, map[string]string{"documento": doc})
	if err != nil {
		v.log.Error().Err(err).Str("documento", doc).Msg("Party lookup failed")
		return LookupResult{}
	}
	return firstID(rows, partyIDColumn)
}

func (v *Verifier) lookupClassification(ctx context.Context, label string) LookupResult {
	rows, err := v.store.SelectEq(ctx, classificationTable, classificationIDColumn, map[string]string{
		"tipo":      expenseType,
		"descricao": label,
	})
	if err != nil {
		v.log.Error().Err(err).Str("descricao", label).Msg("Classification lookup failed")
		return LookupResult{}
	}
	return firstID(rows, classificationIDColumn)
}

// firstID takes the identifier of the first matching row, if any. The store
// enforces no schema, so a missing or oddly-typed id field is treated as
// absent. PostgREST decodes numbers as float64.
func firstID(rows []map[string]any, idColumn string) LookupResult {
	if len(rows) == 0 {
		return LookupResult{}
	}
	res := LookupResult{Exists: true}
	if f, ok := rows[0][idColumn].(float64); ok {
		res.ID = int64(f)
	}
	return res
}
