package texttosql

import (
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")
	selectTokenRe = regexp.MustCompile(`(?i)\bSELECT\b`)
)

// ExtractSQL pulls the SQL statement out of a model response. A fenced code
// block wins; otherwise everything from the first SELECT token is taken;
// otherwise the raw trimmed text is returned as-is. Leftover fence markers
// and a trailing statement terminator are removed either way.
func ExtractSQL(raw string) string {
	s := strings.TrimSpace(raw)

	if m := fencedBlockRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	} else if loc := selectTokenRe.FindStringIndex(s); loc != nil {
		s = s[loc[0]:]
	}

	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}
