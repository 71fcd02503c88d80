package invoice

import (
	"encoding/json"
	"strings"
)

// ParseOutcome is the result of decoding the model's extraction response.
// When Record is nil the response was not valid JSON and Raw carries the
// cleaned text so callers can surface it for debugging instead of silently
// discarding it.
type ParseOutcome struct {
	Record *Record
	Raw    string
}

// Malformed reports whether the response could not be decoded.
func (o ParseOutcome) Malformed() bool { return o.Record == nil }

// ParseModelResponse strips markdown wrapping from the model's response and
// decodes it into a Record. Decoding failure is a soft outcome, not an error.
func ParseModelResponse(raw string) ParseOutcome {
	clean := cleanModelJSON(raw)

	var rec Record
	if err := json.Unmarshal([]byte(clean), &rec); err != nil {
		return ParseOutcome{Raw: clean}
	}
	return ParseOutcome{Record: &rec, Raw: clean}
}

// cleanModelJSON removes Markdown fences and surrounding junk when the model
// ignored the "raw JSON only" instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			// Single-line weirdness; just return as-is.
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still prose around the JSON object,
	// keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
