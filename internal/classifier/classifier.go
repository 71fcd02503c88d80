// Package classifier assigns expense categories to an invoice by matching
// its line-item descriptions against a keyword rule table.
package classifier

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agrofisco/invoice-agent/internal/invoice"
)

// Rule maps one expense category to the keywords that trigger it. Keywords
// are matched case-insensitively as substrings; within a rule any single
// match is enough.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is the rule table, loaded once at startup. It is an ordered
// slice only for stable iteration; no result depends on rule order.
type Taxonomy []Rule

// Load reads a rule table from a YAML file. The file is a list of
// {category, keywords} entries.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: reading rules file: %w", err)
	}

	var rules Taxonomy
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("classifier: parsing rules file: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("classifier: rules file %s contains no rules", path)
	}
	for _, r := range rules {
		if r.Category == "" || len(r.Keywords) == 0 {
			return nil, fmt.Errorf("classifier: rule %q must have a category and at least one keyword", r.Category)
		}
	}
	return rules, nil
}

// Classify returns the set of category labels matched by the line items:
// sorted, deduplicated, never a label without a match. A single item may
// trigger several categories (mixed expenses are legitimate) and several
// items may trigger the same one. Nil or empty input yields an empty set.
func (t Taxonomy) Classify(items []invoice.LineItem) []string {
	matched := make(map[string]bool)

	for _, item := range items {
		if item.Description == "" {
			continue
		}
		desc := strings.ToLower(item.Description)

		for _, rule := range t {
			if matched[rule.Category] {
				continue
			}
			for _, kw := range rule.Keywords {
				if strings.Contains(desc, strings.ToLower(kw)) {
					matched[rule.Category] = true
					break
				}
			}
		}
	}

	labels := make([]string, 0, len(matched))
	for label := range matched {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
