// Package interaction provides a static lookup of known adverse
// drug-combination warnings for the POS pre-checkout safety gate.
package interaction

import (
	"strings"
)

// Warning describes one known interaction between two drugs in a cart.
type Warning struct {
	DrugA       string `json:"drug_a"`
	DrugB       string `json:"drug_b"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Checker answers pairwise interaction queries against a fixed table.
type Checker struct {
	table map[pairKey]entry
}

type pairKey struct {
	a, b string
}

type entry struct {
	severity    string
	description string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// NewChecker builds a checker over the built-in interaction table.
func NewChecker() *Checker {
	c := &Checker{table: make(map[pairKey]entry, len(knownInteractions))}
	for _, it := range knownInteractions {
		c.table[newPairKey(it.a, it.b)] = entry{severity: it.severity, description: it.description}
	}
	return c
}

// Tokenize normalizes a medicine display name to the lookup token: the first
// whitespace-delimited word, lowercased. Display names like
// "Warfarin 5mg Tablet" reduce to "warfarin". The table stores canonical
// tokens, so names whose first word is a brand rather than the compound will
// not match; callers with a generic name should pass that instead.
func Tokenize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Check returns all known interactions among the given drug name tokens.
// Duplicated tokens are collapsed; each interacting pair is reported once.
func (c *Checker) Check(tokens []string) []Warning {
	seen := make(map[string]bool, len(tokens))
	distinct := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		distinct = append(distinct, t)
	}

	var warnings []Warning
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			if e, ok := c.table[newPairKey(distinct[i], distinct[j])]; ok {
				warnings = append(warnings, Warning{
					DrugA:       distinct[i],
					DrugB:       distinct[j],
					Severity:    e.severity,
					Description: e.description,
				})
			}
		}
	}
	return warnings
}
