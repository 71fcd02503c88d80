package extractor

import (
	"context"

	"github.com/agrofisco/invoice-agent/internal/llm"
)

// Agent extracts structured invoice fields from raw document text.
type Agent struct {
	gen llm.Generator
}

// NewAgent creates a field-extraction agent on top of a text generator.
func NewAgent(gen llm.Generator) *Agent {
	return &Agent{gen: gen}
}

// ExtractFields sends the invoice text with the fixed-schema prompt and
// returns the model's raw response. The caller decodes it with
// invoice.ParseModelResponse; the response is untrusted until then.
func (a *Agent) ExtractFields(ctx context.Context, text string) (string, error) {
	return a.gen.GenerateText(ctx, buildExtractionPrompt(text))
}

func buildExtractionPrompt(text string) string {
	return "You are a data-extraction specialist for supplier invoices.\n" +
		"Analyze the invoice text below and return a VALID JSON object with the fields specified.\n" +
		"Respond with ONLY the JSON - no prose, no explanation, no Markdown formatting such as ```json.\n\n" +
		"The JSON structure must be exactly:\n" +
		"{\n" +
		"  \"supplier\": {\"legal_name\": \"string\", \"trade_name\": \"string\", \"tax_id\": \"string\"},\n" +
		"  \"billed_party\": {\"full_name\": \"string\", \"tax_id\": \"string\"},\n" +
		"  \"invoice_number\": \"string\",\n" +
		"  \"issue_date\": \"string (DD/MM/YYYY)\",\n" +
		"  \"total_amount\": number,\n" +
		"  \"line_items\": [{\"description\": \"string\", \"quantity\": number, \"unit_price\": number}],\n" +
		"  \"installments\": [{\"installment_number\": integer, \"due_date\": \"string (DD/MM/YYYY)\", \"amount\": number}]\n" +
		"}\n\n" +
		"If a value is not present in the text, return null for that field.\n" +
		"If the invoice does not break the total into installments, return an empty list for \"installments\".\n\n" +
		"Invoice text:\n" +
		"---\n" +
		text + "\n" +
		"---\n"
}
