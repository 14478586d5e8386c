package validation

import (
	"regexp"
	"strings"
)

// SentinelEmail replaces any address that fails validation, so downstream
// records always carry a syntactically usable value.
const SentinelEmail = "arabat@arabat.com"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// EmailResult is the outcome of validating and normalizing a freeform email
// field. Original keeps the raw trimmed input for diagnostics even when
// Normalized has been replaced by the sentinel.
type EmailResult struct {
	Valid      bool
	Reason     string
	Normalized string
	Original   string
}

// NormalizeEmail validates a freeform email field. Fields sometimes hold
// several addresses; candidates are split on the same delimiter set as
// phone numbers, and the first well-formed one wins, falling back to the
// last candidate examined. That asymmetric tie-break is inherited behavior
// and must stay as is.
func NormalizeEmail(raw string) EmailResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmailResult{Reason: "Email vacío", Normalized: SentinelEmail, Original: "null"}
	}

	chosen := trimmed
	if candidates := candidateSplit.Split(trimmed, -1); len(candidates) > 1 {
		for _, cand := range candidates {
			chosen = cand
			if emailPattern.MatchString(cand) {
				break
			}
		}
	}

	if !emailPattern.MatchString(chosen) {
		if strings.Contains(strings.ToUpper(chosen), "Ñ") {
			return EmailResult{
				Reason:     "Ñ no es un carácter válido en correos electrónicos",
				Normalized: SentinelEmail,
				Original:   trimmed,
			}
		}
		return EmailResult{Reason: "Formato de email inválido", Normalized: SentinelEmail, Original: trimmed}
	}
	return EmailResult{Valid: true, Normalized: chosen, Original: trimmed}
}
