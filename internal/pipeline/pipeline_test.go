package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofisco/invoice-agent/internal/classifier"
	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/logger"
	"github.com/agrofisco/invoice-agent/internal/registry"
)

type fakeTexts struct {
	text string
	err  error
}

func (f *fakeTexts) ExtractText(io.Reader) (string, error) { return f.text, f.err }

type fakeFields struct {
	response string
	err      error
	gotText  string
}

func (f *fakeFields) ExtractFields(_ context.Context, text string) (string, error) {
	f.gotText = text
	return f.response, f.err
}

type fakeVerifier struct {
	verification registry.Verification
	gotRecord    *invoice.Record
}

func (f *fakeVerifier) Verify(_ context.Context, rec *invoice.Record) registry.Verification {
	f.gotRecord = rec
	return f.verification
}

const modelResponse = `{
  "supplier": {"legal_name": "Agro Supplies Ltda", "tax_id": "12.345.678/0001-90"},
  "billed_party": {"full_name": "John Farmer", "tax_id": "123.456.789-00"},
  "invoice_number": "NF-1042",
  "issue_date": "10/01/2024",
  "total_amount": 500.0,
  "line_items": [{"description": "soybean seed bag", "quantity": 10, "unit_price": 50.0}],
  "installments": []
}`

func newPipeline(texts TextExtractor, fields FieldExtractor, verifier RegistryVerifier) *Pipeline {
	return New(texts, fields, classifier.Default(), verifier, logger.NewWithWriter(nil))
}

func TestProcess_FullFlow(t *testing.T) {
	texts := &fakeTexts{text: "NOTA FISCAL ... soybean seed ..."}
	fields := &fakeFields{response: modelResponse}
	verifier := &fakeVerifier{verification: registry.Verification{
		Supplier: registry.LookupResult{Exists: true, ID: 42},
	}}

	p := newPipeline(texts, fields, verifier)
	result, err := p.Process(context.Background(), strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.False(t, result.Malformed())

	// The extracted text reached the field extractor.
	assert.Equal(t, texts.text, fields.gotText)

	rec := result.Record
	assert.Equal(t, "NF-1042", rec.InvoiceNumber)

	// One default installment was synthesized.
	require.Len(t, rec.Installments, 1)
	assert.Equal(t, "10/02/2024", rec.Installments[0].DueDate)

	// Line items were classified before verification.
	assert.Equal(t, []string{"AGRICULTURAL INPUTS"}, rec.Categories)
	require.NotNil(t, verifier.gotRecord)
	assert.Equal(t, []string{"AGRICULTURAL INPUTS"}, verifier.gotRecord.Categories)

	require.NotNil(t, result.Verification)
	assert.True(t, result.Verification.Supplier.Exists)
	assert.Empty(t, result.Warnings)
}

func TestProcess_MalformedModelResponse(t *testing.T) {
	texts := &fakeTexts{text: "some document text"}
	fields := &fakeFields{response: "I could not find invoice data here."}

	p := newPipeline(texts, fields, &fakeVerifier{})
	result, err := p.Process(context.Background(), strings.NewReader("%PDF"))
	require.NoError(t, err)

	// Soft failure: the raw text is surfaced, nothing else runs.
	assert.True(t, result.Malformed())
	assert.Contains(t, result.RawResponse, "could not find")
	assert.Nil(t, result.Verification)
}

func TestProcess_InstallmentWarningIsNonFatal(t *testing.T) {
	texts := &fakeTexts{text: "doc"}
	// No issue date, so the default installment cannot be generated.
	fields := &fakeFields{response: `{"invoice_number": "NF-1", "line_items": [], "installments": []}`}

	p := newPipeline(texts, fields, &fakeVerifier{})
	result, err := p.Process(context.Background(), strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.False(t, result.Malformed())

	assert.Empty(t, result.Record.Installments)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "default installment")

	// The record still flowed through classification and verification.
	assert.NotNil(t, result.Verification)
}

func TestProcess_TextExtractionFailure(t *testing.T) {
	p := newPipeline(&fakeTexts{err: errors.New("broken pdf")}, &fakeFields{}, &fakeVerifier{})

	_, err := p.Process(context.Background(), strings.NewReader("junk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pdf")
}

func TestProcess_EmptyDocument(t *testing.T) {
	p := newPipeline(&fakeTexts{text: "   \n  "}, &fakeFields{}, &fakeVerifier{})

	_, err := p.Process(context.Background(), strings.NewReader("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extractable text")
}

func TestProcess_ModelFailure(t *testing.T) {
	p := newPipeline(&fakeTexts{text: "doc"}, &fakeFields{err: errors.New("model unavailable")}, &fakeVerifier{})

	_, err := p.Process(context.Background(), strings.NewReader("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}
