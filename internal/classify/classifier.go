package classify

import (
	"regexp"
	"strings"
)

// CategoryGeneric is the fallback when no category pattern matches.
const CategoryGeneric = "generic_form"

// categoryRule pairs a category label with its trigger pattern.
type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

// categoryRules is evaluated front to back and the first match wins, so the
// order here is a priority contract: a document mentioning both tax and
// banking terms classifies as tax. Kept as a slice precisely because map
// iteration order would turn that contract into a coin flip.
var categoryRules = []categoryRule{
	{"tax", regexp.MustCompile(`(?i)(irs|tax\s*return|tax\s*form|w[-\s]?9|w[-\s]?2|1040|1099)`)},
	{"medical", regexp.MustCompile(`(?i)(health\s*insurance|patient|medical\s*history|diagnosis|prescription)`)},
	{"employment", regexp.MustCompile(`(?i)(employment|job\s*application|work\s*history|resume|cv)`)},
	{"banking", regexp.MustCompile(`(?i)(bank\s*account|direct\s*deposit|routing\s*number|account\s*number)`)},
	{"immigration", regexp.MustCompile(`(?i)(uscis|visa|passport|i[-\s]?94|i[-\s]?551|green\s*card)`)},
	{"consent", regexp.MustCompile(`(?i)(consent\s*form|release\s*form|authorization|permission)`)},
	{"application", regexp.MustCompile(`(?i)(application|apply|form|request)`)},
}

// Classification is the outcome of scoring one document.
type Classification struct {
	Category  string `json:"category"`
	PageCount int    `json:"page_count"`
}

// Categorize returns the form category for the full concatenated document
// text, or CategoryGeneric when nothing matches.
func Categorize(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(lowered) {
			return rule.category
		}
	}
	return CategoryGeneric
}

// Categories lists the closed category vocabulary in priority order, with
// the generic fallback last.
func Categories() []string {
	out := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.category)
	}
	return append(out, CategoryGeneric)
}
