// Package pipeline runs one uploaded invoice PDF through the extraction
// flow: document text, model field extraction, installment defaulting,
// classification and registry verification.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agrofisco/invoice-agent/internal/classifier"
	"github.com/agrofisco/invoice-agent/internal/invoice"
	"github.com/agrofisco/invoice-agent/internal/registry"
)

// TextExtractor returns the concatenated page text of a PDF stream.
type TextExtractor interface {
	ExtractText(r io.Reader) (string, error)
}

// FieldExtractor sends document text to the model and returns its raw
// response.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (string, error)
}

// RegistryVerifier cross-checks a record against the persisted registry.
type RegistryVerifier interface {
	Verify(ctx context.Context, rec *invoice.Record) registry.Verification
}

// Result is what one processed upload hands back to the caller: the parsed
// record (or only the raw model text when it could not be decoded), the
// advisory registry verification, and any non-fatal warnings.
type Result struct {
	Record       *invoice.Record        `json:"record,omitempty"`
	RawResponse  string                 `json:"raw_response,omitempty"`
	Verification *registry.Verification `json:"verification,omitempty"`
	Warnings     []string               `json:"warnings,omitempty"`
}

// Malformed reports whether the model response could not be decoded.
func (r *Result) Malformed() bool { return r.Record == nil }

// Pipeline wires the per-upload flow. No state is shared across requests;
// all mutation is local to one in-flight record.
type Pipeline struct {
	texts    TextExtractor
	fields   FieldExtractor
	rules    classifier.Taxonomy
	verifier RegistryVerifier
	log      zerolog.Logger
}

// New assembles a pipeline from its collaborators.
func New(texts TextExtractor, fields FieldExtractor, rules classifier.Taxonomy, verifier RegistryVerifier, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		texts:    texts,
		fields:   fields,
		rules:    rules,
		verifier: verifier,
		log:      log,
	}
}

// Process handles a single uploaded invoice PDF.
func (p *Pipeline) Process(ctx context.Context, pdf io.Reader) (*Result, error) {
	// 1. Extract the document text.
	text, err := p.texts.ExtractText(pdf)
	if err != nil {
		return nil, fmt.Errorf("process: extracting text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("process: document contains no extractable text")
	}

	// 2. Ask the model for the structured fields.
	rawResponse, err := p.fields.ExtractFields(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("process: extracting fields: %w", err)
	}

	// 3. Decode the response. A malformed response is a soft failure: the
	//    raw text is surfaced for debugging instead of being discarded.
	outcome := invoice.ParseModelResponse(rawResponse)
	if outcome.Malformed() {
		p.log.Warn().Msg("Model response was not valid JSON")
		return &Result{RawResponse: outcome.Raw}, nil
	}
	rec := outcome.Record
	result := &Result{Record: rec, RawResponse: outcome.Raw}

	// 4. Default a single installment when none were extracted.
	if synthesized, warn := invoice.EnsureInstallments(rec); warn != nil {
		p.log.Warn().Err(warn).Msg("Could not generate default installment")
		result.Warnings = append(result.Warnings, warn.Error())
	} else if synthesized {
		p.log.Info().Msg("No installments extracted; generated single default installment")
	}

	// 5. Classify the expense from the line items.
	rec.Categories = p.rules.Classify(rec.LineItems)

	// 6. Cross-check supplier, billed party and classification against
	//    the registry. Advisory only; never blocks the flow.
	verification := p.verifier.Verify(ctx, rec)
	result.Verification = &verification

	return result, nil
}
