package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Maya Levi  ",
			want:  "Maya Levi",
		},
		{
			name:  "multiple spaces between words",
			input: "Maya    Levi",
			want:  "Maya Levi",
		},
		{
			name:  "tabs and newlines",
			input: "Maya\t\nLevi",
			want:  "Maya Levi",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " José O'Neil-Brown ",
			want:  "José O'Neil-Brown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"control characters removed", "late\x00 check\x07in", "late checkin"},
		{"whitespace collapsed", "  ground   floor\nplease ", "ground floor please"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFreeText(tt.input); got != tt.want {
				t.Errorf("NormalizeFreeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
