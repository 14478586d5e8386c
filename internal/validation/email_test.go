package validation

import (
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantValid      bool
		wantReason     string
		wantNormalized string
		wantOriginal   string
	}{
		{
			name:           "plain valid address",
			raw:            "john.doe@example.com",
			wantValid:      true,
			wantNormalized: "john.doe@example.com",
			wantOriginal:   "john.doe@example.com",
		},
		{
			name:           "valid address with surrounding spaces",
			raw:            "  maria@example.org  ",
			wantValid:      true,
			wantNormalized: "maria@example.org",
			wantOriginal:   "maria@example.org",
		},
		{
			name:           "empty field",
			raw:            "",
			wantReason:     "Email vacío",
			wantNormalized: SentinelEmail,
			wantOriginal:   "null",
		},
		{
			name:           "whitespace only field",
			raw:            "   ",
			wantReason:     "Email vacío",
			wantNormalized: SentinelEmail,
			wantOriginal:   "null",
		},
		{
			name:           "missing dot tail",
			raw:            "a@b",
			wantReason:     "Formato de email inválido",
			wantNormalized: SentinelEmail,
			wantOriginal:   "a@b",
		},
		{
			name:           "double at sign",
			raw:            "a@b@c",
			wantReason:     "Formato de email inválido",
			wantNormalized: SentinelEmail,
			wantOriginal:   "a@b@c",
		},
		{
			name:           "enye in local part",
			raw:            "muñoz@example.com",
			wantReason:     "Ñ no es un carácter válido en correos electrónicos",
			wantNormalized: SentinelEmail,
			wantOriginal:   "muñoz@example.com",
		},
		{
			name:           "first well-formed candidate wins",
			raw:            "foo@bar.com; baz@qux.com",
			wantValid:      true,
			wantNormalized: "foo@bar.com",
			wantOriginal:   "foo@bar.com; baz@qux.com",
		},
		{
			name:           "later candidate rescues the field",
			raw:            "notanemail bar@ok.com",
			wantValid:      true,
			wantNormalized: "bar@ok.com",
			wantOriginal:   "notanemail bar@ok.com",
		},
		{
			name:           "no candidate matches, last one is reported",
			raw:            "bad1 bad2",
			wantReason:     "Formato de email inválido",
			wantNormalized: SentinelEmail,
			wantOriginal:   "bad1 bad2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.raw)
			if got.Valid != tt.wantValid {
				t.Errorf("NormalizeEmail(%q).Valid = %v, want %v (reason: %q)", tt.raw, got.Valid, tt.wantValid, got.Reason)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("NormalizeEmail(%q).Reason = %q, want %q", tt.raw, got.Reason, tt.wantReason)
			}
			if got.Normalized != tt.wantNormalized {
				t.Errorf("NormalizeEmail(%q).Normalized = %q, want %q", tt.raw, got.Normalized, tt.wantNormalized)
			}
			if got.Original != tt.wantOriginal {
				t.Errorf("NormalizeEmail(%q).Original = %q, want %q", tt.raw, got.Original, tt.wantOriginal)
			}
		})
	}
}
