package texttosql

import "strings"

// RejectReason names why a generated query failed the safety check.
type RejectReason int

const (
	// RejectNone means the query passed.
	RejectNone RejectReason = iota
	// RejectNotSelect means the query does not start with SELECT.
	RejectNotSelect
	// RejectForbiddenKeyword means a denylisted keyword appeared in the text.
	RejectForbiddenKeyword
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectNotSelect:
		return "not_select"
	case RejectForbiddenKeyword:
		return "forbidden_keyword"
	default:
		return "unknown"
	}
}

// SafetyResult reports the outcome of the textual safety check.
type SafetyResult struct {
	Reason RejectReason
	// Keyword is the denylisted keyword that matched, when Reason is
	// RejectForbiddenKeyword.
	Keyword string
}

// Safe reports whether the query may be sent to the execution sandbox.
func (r SafetyResult) Safe() bool { return r.Reason == RejectNone }

// forbiddenKeywords are rejected anywhere in the uppercased query text.
var forbiddenKeywords = []string{
	"DROP", "DELETE", "TRUNCATE", "ALTER", "UPDATE", "INSERT", "GRANT", "REVOKE",
}

// CheckSafety accepts only queries that, uppercased and trimmed, start with
// SELECT and contain no denylisted keyword.
//
// This is a substring denylist, not a SQL parser. It is deliberately
// conservative: it false-rejects legitimate identifiers such as a column
// named "updated_at" (contains UPDATE), and sufficiently obfuscated input
// could in principle slip past it. It is a defense-in-depth layer only; the
// read-only role the store applies inside run_safe_query is the
// authoritative boundary.
func CheckSafety(query string) SafetyResult {
	q := strings.ToUpper(strings.TrimSpace(query))

	if !strings.HasPrefix(q, "SELECT") {
		return SafetyResult{Reason: RejectNotSelect}
	}
	for _, kw := range forbiddenKeywords {
		if strings.Contains(q, kw) {
			return SafetyResult{Reason: RejectForbiddenKeyword, Keyword: kw}
		}
	}
	return SafetyResult{}
}
