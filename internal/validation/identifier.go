package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dniPattern = regexp.MustCompile(`^\d{8}[A-Z]$`)
	niePattern = regexp.MustCompile(`^[XYZ]\d{7}[A-Z]$`)
	cifPattern = regexp.MustCompile(`^[ABCDEFGHJKLMNPQRSUVW]\d{7}[0-9A-J]$`)
)

// checkLetters maps (numeric body mod 23) to the DNI/NIE control letter.
const checkLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// cifControlLetters maps the CIF control digit to its letter form.
const cifControlLetters = "JABCDEFGHI"

// CIF leading letters that constrain the form of the control symbol. Every
// other leading letter accepts the digit or its letter equivalent.
const (
	cifLetterOnly = "PQRSNW"
	cifDigitOnly  = "ABEH"
)

// Outcome is the result of validating a single field. Reason is empty iff
// the value is valid. Invalidity is an expected, reportable result of dirty
// input, not an error.
type Outcome struct {
	Valid  bool
	Reason string
}

// ValidateIdentifier classifies a Spanish identifier (DNI, NIE or CIF) by
// shape and verifies its control symbol. Input is trimmed and uppercased
// before classification.
func ValidateIdentifier(raw string) Outcome {
	id := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case dniPattern.MatchString(id):
		return validateDNI(id)
	case niePattern.MatchString(id):
		return validateNIE(id)
	case cifPattern.MatchString(id):
		return validateCIF(id)
	}
	return Outcome{Reason: "Formato inválido para DNI/NIE/CIF"}
}

func validateDNI(dni string) Outcome {
	number, _ := strconv.Atoi(dni[:8])
	want := checkLetters[number%23]
	if dni[8] == want {
		return Outcome{Valid: true}
	}
	return Outcome{Reason: fmt.Sprintf("Letra de control incorrecta (esperado: %c)", want)}
}

func validateNIE(nie string) Outcome {
	// The leading letter stands for a digit: X→0, Y→1, Z→2.
	prefix := strconv.Itoa(int(nie[0] - 'X'))
	number, _ := strconv.Atoi(prefix + nie[1:8])
	want := checkLetters[number%23]
	if nie[8] == want {
		return Outcome{Valid: true}
	}
	return Outcome{Reason: fmt.Sprintf("Letra de control incorrecta (esperado: %c)", want)}
}

func validateCIF(cif string) Outcome {
	digits := cif[1:8]

	// Weighted checksum: digits at even 0-based positions are doubled and
	// digit-summed, the rest are added as-is.
	total := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			d *= 2
			total += d/10 + d%10
		} else {
			total += d
		}
	}
	controlNum := (10 - total%10) % 10
	controlDigit := byte('0' + controlNum)
	controlLetter := cifControlLetters[controlNum]
	control := cif[8]

	switch {
	case strings.IndexByte(cifLetterOnly, cif[0]) >= 0:
		if control == controlLetter {
			return Outcome{Valid: true}
		}
		return Outcome{Reason: fmt.Sprintf("Letra de control CIF incorrecta (esperado: %c)", controlLetter)}
	case strings.IndexByte(cifDigitOnly, cif[0]) >= 0:
		if control == controlDigit {
			return Outcome{Valid: true}
		}
		return Outcome{Reason: fmt.Sprintf("Dígito de control CIF incorrecto (esperado: %d)", controlNum)}
	default:
		if control == controlDigit || control == controlLetter {
			return Outcome{Valid: true}
		}
		return Outcome{Reason: fmt.Sprintf("Control CIF incorrecto (esperado: %d o %c)", controlNum, controlLetter)}
	}
}
