// Package textscan extracts the fact-bearing tokens of resume text: numeric
// metrics and proper-noun terms. Both the tailoring divergence check and the
// fabrication validator compare these against source material.
package textscan

import (
	"regexp"
	"strings"
	"unicode"
)

var numberPattern = regexp.MustCompile(`[$€£]?\d[\d,.]*[%+]?[KkMmBb]?`)

// sentence-leading words and generic capitalized terms that carry no facts.
var ignoredTerms = map[string]struct{}{
	"i": {}, "a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "for": {},
	"with": {}, "led": {}, "built": {}, "managed": {}, "developed": {},
	"created": {}, "designed": {}, "improved": {}, "increased": {},
	"reduced": {}, "delivered": {}, "launched": {}, "drove": {},
	"owned": {}, "partnered": {}, "collaborated": {}, "implemented": {},
	"scaled": {}, "spearheaded": {}, "optimized": {}, "established": {},
}

// NumericTokens returns every number-like token in text, including currency
// and percent forms.
func NumericTokens(text string) []string {
	return numberPattern.FindAllString(text, -1)
}

// ProperTerms returns capitalized words and acronyms that plausibly name
// entities, tools, or companies. The first word of the text is skipped
// unless it is an acronym, since sentence case is not a fact signal.
func ProperTerms(text string) []string {
	var terms []string
	words := strings.Fields(text)
	for i, word := range words {
		cleaned := strings.Trim(word, ".,;:()[]\"'")
		if cleaned == "" {
			continue
		}
		runes := []rune(cleaned)
		if !unicode.IsUpper(runes[0]) {
			continue
		}
		if i == 0 && !isAcronym(cleaned) {
			continue
		}
		if _, skip := ignoredTerms[strings.ToLower(cleaned)]; skip {
			continue
		}
		if len(runes) < 2 {
			continue
		}
		terms = append(terms, cleaned)
	}
	return terms
}

// MissingTerms returns the numeric tokens and proper terms of text that do
// not appear (case-insensitively) anywhere in the source material.
func MissingTerms(text string, sources []string) []string {
	haystack := strings.ToLower(strings.Join(sources, "\n"))

	var missing []string
	seen := make(map[string]struct{})
	check := func(term string) {
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		if !strings.Contains(haystack, key) {
			missing = append(missing, term)
		}
	}

	for _, tok := range NumericTokens(text) {
		check(tok)
	}
	for _, term := range ProperTerms(text) {
		check(term)
	}
	return missing
}

func isAcronym(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
