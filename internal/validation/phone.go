package validation

import (
	"regexp"
	"strings"
)

var (
	// candidateSplit breaks a freeform multi-value field into candidates.
	// Shared by the phone and email normalizers.
	candidateSplit = regexp.MustCompile(`[/\-;,\s]+`)
	nonDigits      = regexp.MustCompile(`\D`)
)

// NormalizePhone picks one canonical 9-digit Spanish mobile number out of a
// freeform field that may hold several numbers. Candidates are split on
// runs of / - ; , and whitespace, stripped to digits and kept only when
// exactly 9 digits long. The first mobile (prefix 6 or 7) in input order
// wins. Landlines (prefix 8 or 9) are recognized but never returned: the
// cleaned roster must not carry them.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	for _, cand := range candidateSplit.Split(trimmed, -1) {
		digits := nonDigits.ReplaceAllString(cand, "")
		if len(digits) != 9 {
			continue
		}
		if digits[0] == '6' || digits[0] == '7' {
			return digits
		}
	}
	return ""
}
