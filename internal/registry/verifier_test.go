package registry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/logger"
)

// selectCall records one SelectEq invocation.
type selectCall struct {
	table   string
	columns string
	filters map[string]string
}

// fakeStore answers lookups from a canned table->rows map and records calls.
type fakeStore struct {
	rows map[string][]map[string]any
	err  error

	selects []selectCall
}

func (f *fakeStore) SelectEq(_ context.Context, table, columns string, filters map[string]string) ([]map[string]any, error) {
	f.selects = append(f.selects, selectCall{table: table, columns: columns, filters: filters})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[table], nil
}

func (f *fakeStore) CallRPC(context.Context, string, any) (json.RawMessage, error) {
	return nil, errors.New("fakeStore: CallRPC not expected here")
}

func sampleRecord() *invoice.Record {
	return &invoice.Record{
		Supplier:    invoice.Party{LegalName: "Agro Supplies Ltda", TaxID: "12.345.678/0001-90"},
		BilledParty: invoice.BilledParty{FullName: "John Farmer", TaxID: "123.456.789-00"},
		Categories:  []string{"AGRICULTURAL INPUTS", "OPERATIONAL SERVICES"},
	}
}

func TestVerify_AllFound(t *testing.T) {
	st := &fakeStore{rows: map[string][]map[string]any{
		"pessoas":       {{"idPessoas": float64(42)}},
		"classificacao": {{"idClassificacao": float64(7)}},
	}}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	got := v.Verify(context.Background(), sampleRecord())

	assert.Equal(t, LookupResult{Exists: true, ID: 42}, got.Supplier)
	assert.Equal(t, LookupResult{Exists: true, ID: 42}, got.BilledParty)
	assert.Equal(t, LookupResult{Exists: true, ID: 7}, got.Classification)
}

func TestVerify_NormalizesTaxIDBeforeLookup(t *testing.T) {
	st := &fakeStore{}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	v.Verify(context.Background(), sampleRecord())

	require.Len(t, st.selects, 3)
	assert.Equal(t, "pessoas", st.selects[0].table)
	assert.Equal(t, map[string]string{"documento": "12345678000190"}, st.selects[0].filters)
	assert.Equal(t, map[string]string{"documento": "12345678900"}, st.selects[1].filters)
}

func TestVerify_ClassificationUsesFirstCategoryOnly(t *testing.T) {
	st := &fakeStore{}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	v.Verify(context.Background(), sampleRecord())

	last := st.selects[len(st.selects)-1]
	assert.Equal(t, "classificacao", last.table)
	assert.Equal(t, map[string]string{"tipo": "DESPESA", "descricao": "AGRICULTURAL INPUTS"}, last.filters)
}

func TestVerify_EmptyTaxIDSkipsQuery(t *testing.T) {
	st := &fakeStore{}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	rec := &invoice.Record{
		Supplier:    invoice.Party{TaxID: "no digits"},
		BilledParty: invoice.BilledParty{TaxID: ""},
	}
	got := v.Verify(context.Background(), rec)

	assert.Empty(t, st.selects, "no query should be issued for empty documents")
	assert.False(t, got.Supplier.Exists)
	assert.False(t, got.BilledParty.Exists)
	assert.False(t, got.Classification.Exists)
}

func TestVerify_StoreErrorIsNotFound(t *testing.T) {
	st := &fakeStore{err: errors.New("store unreachable")}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	got := v.Verify(context.Background(), sampleRecord())

	// Errors degrade to not-found per entry; the other lookups still run.
	assert.Len(t, st.selects, 3)
	assert.False(t, got.Supplier.Exists)
	assert.False(t, got.BilledParty.Exists)
	assert.False(t, got.Classification.Exists)
}

func TestVerify_NotFound(t *testing.T) {
	st := &fakeStore{rows: map[string][]map[string]any{}}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	got := v.Verify(context.Background(), sampleRecord())

	assert.False(t, got.Supplier.Exists)
	assert.False(t, got.Classification.Exists)
}

func TestVerify_MissingIDFieldStillExists(t *testing.T) {
	st := &fakeStore{rows: map[string][]map[string]any{
		"pessoas": {{"something_else": "x"}},
	}}
	v := NewVerifier(st, logger.NewWithWriter(nil))

	got := v.Verify(context.Background(), sampleRecord())

	assert.True(t, got.Supplier.Exists)
	assert.Zero(t, got.Supplier.ID)
}
