package registry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/logger"
)

// rpcStore records the RPC call the persister makes.
type rpcStore struct {
	result json.RawMessage
	err    error

	fn     string
	params map[string]any
}

func (s *rpcStore) SelectEq(context.Context, string, string, map[string]string) ([]map[string]any, error) {
	return nil, errors.New("rpcStore: SelectEq not expected here")
}

func (s *rpcStore) CallRPC(_ context.Context, fn string, params any) (json.RawMessage, error) {
	s.fn = fn
	s.params = params.(map[string]any)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func confirmedRecord() *invoice.Record {
	return &invoice.Record{
		Supplier:      invoice.Party{LegalName: "Agro Supplies Ltda", TradeName: "AgroSup", TaxID: "12.345.678/0001-90"},
		BilledParty:   invoice.BilledParty{FullName: "John Farmer", TaxID: "123.456.789-00"},
		InvoiceNumber: "NF-1042",
		IssueDate:     "10/01/2024",
		TotalAmount:   decimal.NullDecimal{Decimal: decimal.NewFromFloat(500.0), Valid: true},
		Installments: []invoice.Installment{
			{Number: 1, DueDate: "10/02/2024", Amount: decimal.NewFromFloat(250.0)},
			{Number: 2, DueDate: "10/03/2024", Amount: decimal.NewFromFloat(250.0)},
		},
		Categories: []string{"AGRICULTURAL INPUTS", "OPERATIONAL SERVICES"},
	}
}

func TestSave_BuildsProcedureParameters(t *testing.T) {
	st := &rpcStore{result: json.RawMessage(`"Registro lançado com sucesso."`)}
	p := NewPersister(st, logger.NewWithWriter(nil))

	payload, err := p.Save(context.Background(), confirmedRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `"Registro lançado com sucesso."`, string(payload))

	assert.Equal(t, "salvar_nota_fiscal_completa", st.fn)

	assert.Equal(t, "Agro Supplies Ltda", *st.params["p_forn_razao"].(*string))
	assert.Equal(t, "12345678000190", *st.params["p_forn_doc"].(*string))
	assert.Equal(t, "John Farmer", *st.params["p_fat_nome"].(*string))
	assert.Equal(t, "12345678900", *st.params["p_fat_doc"].(*string))
	assert.Equal(t, "NF-1042", *st.params["p_mov_numnf"].(*string))

	// Only the first derived category sticks.
	assert.Equal(t, "AGRICULTURAL INPUTS", *st.params["p_class_desc"].(*string))

	// Issue date reformatted to storage format.
	assert.Equal(t, "2024-01-10", *st.params["p_mov_emissao"].(*string))

	// The total is a bare JSON number, not decimal's quoted default.
	total, err := json.Marshal(st.params["p_mov_valor_total"])
	require.NoError(t, err)
	assert.Equal(t, "500", string(total))
}

func TestSave_SerializesInstallments(t *testing.T) {
	st := &rpcStore{result: json.RawMessage(`null`)}
	p := NewPersister(st, logger.NewWithWriter(nil))

	_, err := p.Save(context.Background(), confirmedRecord())
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(st.params["p_parcelas_json"].(string)), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, float64(1), rows[0]["numero_parcela"])
	assert.Equal(t, "2024-02-10", rows[0]["data_vencimento"])
	assert.Equal(t, float64(250), rows[0]["valor_parcela"])
	assert.Equal(t, "2024-03-10", rows[1]["data_vencimento"])
}

func TestSave_MalformedFieldsBecomeNull(t *testing.T) {
	st := &rpcStore{result: json.RawMessage(`null`)}
	p := NewPersister(st, logger.NewWithWriter(nil))

	rec := &invoice.Record{
		IssueDate: "not a date",
		Installments: []invoice.Installment{
			{Number: 1, DueDate: "also not a date", Amount: decimal.NewFromInt(10)},
		},
	}
	_, err := p.Save(context.Background(), rec)
	require.NoError(t, err)

	assert.Nil(t, st.params["p_mov_emissao"].(*string))
	assert.Nil(t, st.params["p_forn_razao"].(*string))
	assert.Nil(t, st.params["p_class_desc"].(*string))
	assert.Nil(t, st.params["p_mov_valor_total"].(*json.Number))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(st.params["p_parcelas_json"].(string)), &rows))
	assert.Nil(t, rows[0]["data_vencimento"])
}

func TestSave_StoreFailureReturnsError(t *testing.T) {
	st := &rpcStore{err: errors.New("duplicate key value violates unique constraint")}
	p := NewPersister(st, logger.NewWithWriter(nil))

	payload, err := p.Save(context.Background(), confirmedRecord())

	require.Error(t, err)
	assert.Nil(t, payload)
	assert.Contains(t, err.Error(), "duplicate key value")
}
