// Package texttosql converts a natural-language question into a validated,
// read-only SQL query against the store's schema, executes it through the
// store's sandboxed procedure, and synthesizes a natural-language answer
// from the result.
package texttosql

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agrofisco/invoice-agent/internal/llm"
	"github.com/agrofisco/invoice-agent/internal/store"
)

// safeQueryProcedure is the single pre-registered procedure allowed to
// execute generated queries; the store runs it under a read-only role.
const safeQueryProcedure = "run_safe_query"

const refusalMessage = "Sorry, your question resulted in a query that is not allowed for safety reasons."

// Orchestrator runs the three sequential, non-retryable stages per question:
// generate, validate, execute-and-summarize.
type Orchestrator struct {
	gen   llm.Generator
	store store.Store
	log   zerolog.Logger
}

// NewOrchestrator wires the orchestrator to its collaborators.
func NewOrchestrator(gen llm.Generator, st store.Store, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{gen: gen, store: st, log: log}
}

// Answer runs one question through the pipeline. It never fails past this
// boundary: every upstream error is converted into an apologetic message
// carrying the underlying cause, and unsafe queries get a fixed refusal.
func (o *Orchestrator) Answer(ctx context.Context, question string) string {
	answer, err := o.answer(ctx, question)
	if err != nil {
		o.log.Error().Err(err).Str("question", question).Msg("Question pipeline failed")
		return fmt.Sprintf("Sorry, something went wrong while answering your question: %v", err)
	}
	return answer
}

func (o *Orchestrator) answer(ctx context.Context, question string) (string, error) {
	// Stage 1: generate the query.
	raw, err := o.gen.GenerateText(ctx, buildSQLPrompt(question))
	if err != nil {
		return "", fmt.Errorf("generating query: %w", err)
	}
	query := ExtractSQL(raw)

	// The generated query is diagnostic-only: logged, never persisted.
	o.log.Debug().Str("query", query).Msg("Generated query")

	// Stage 2: validate. A rejection short-circuits to the refusal message;
	// stage 3 is never reached.
	if res := CheckSafety(query); !res.Safe() {
		o.log.Warn().
			Str("query", query).
			Stringer("reason", res.Reason).
			Str("keyword", res.Keyword).
			Msg("Query rejected by safety check")
		return refusalMessage, nil
	}

	// Stage 3: execute through the sandboxed procedure and summarize.
	rows, err := o.store.CallRPC(ctx, safeQueryProcedure, map[string]any{"query_text": query})
	if err != nil {
		return "", fmt.Errorf("executing query: %w", err)
	}

	answer, err := o.gen.GenerateText(ctx, buildAnswerPrompt(question, rows))
	if err != nil {
		return "", fmt.Errorf("synthesizing answer: %w", err)
	}
	return answer, nil
}
