package validation

import (
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already normalized mobile is unchanged", raw: "600123456", want: "600123456"},
		{name: "mobile starting with 7", raw: "712345678", want: "712345678"},
		{name: "landline is dropped", raw: "916547890", want: ""},
		{name: "landline starting with 8 is dropped", raw: "812345678", want: ""},
		{name: "empty input", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "too short after cleaning", raw: "12345678", want: ""},
		{name: "too long after cleaning", raw: "6001234567", want: ""},
		{name: "dots are stripped, not split on", raw: "600.111.222", want: "600111222"},
		{name: "parentheses stripped", raw: "(600)123456", want: "600123456"},
		{
			name: "first mobile wins over earlier landline",
			raw:  "916547890, 677888999",
			want: "677888999",
		},
		{
			name: "first mobile in input order wins",
			raw:  "611222333;622333444",
			want: "611222333",
		},
		{
			name: "mixed separators",
			raw:  "912345678 / 699888777 - 688777666",
			want: "699888777",
		},
		{
			name: "only landlines yields empty, never a landline",
			raw:  "912345678 / 932345678",
			want: "",
		},
		{
			// Hyphens are candidate separators, so hyphen-grouped digits
			// break into fragments that are each too short.
			name: "hyphen-grouped number is split and dropped",
			raw:  "600-111-222",
			want: "",
		},
		{name: "prefix other than 6-9 is dropped", raw: "512345678", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.raw); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	once := NormalizePhone("677.88.89.99")
	twice := NormalizePhone(once)
	if once != twice {
		t.Errorf("normalization not idempotent: first %q, second %q", once, twice)
	}
}
