// Package tokens provides token estimation helpers for context budget
// management. The heuristic is calibrated for GPT-style tokenizers
// (~4 characters per token) and deliberately avoids a vendored tokenizer;
// exact accounting belongs to the backend adapters.
package tokens

import (
	"strings"
	"unicode/utf8"
)

// charsPerToken is the calibration factor for Estimate.
const charsPerToken = 4

// Estimate returns an approximate token count for text.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text)
	count := (n + charsPerToken - 1) / charsPerToken
	if count < 1 {
		count = 1
	}
	return count
}

// CountWords returns the number of whitespace-delimited units in text. This
// is the unit the token-budgeted memory evicts by, so its accounting must
// match the eviction granularity exactly.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
