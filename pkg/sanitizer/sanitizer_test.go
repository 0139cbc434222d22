package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing spaces", "  Ana Gomez  ", "Ana Gomez"},
		{"internal whitespace collapsed", "Ana \t\t Gomez", "Ana Gomez"},
		{"already normalized", "Ana Gomez", "Ana Gomez"},
		{"idempotent", TrimAndNormalize("  Ana   Gomez "), "Ana Gomez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNormalizeContact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain digits", "9876543210", "9876543210"},
		{"dashes", "987-654-3210", "9876543210"},
		{"spaces and parens", "(987) 654 3210", "9876543210"},
		{"dots", "987.654.3210", "9876543210"},
		{"surrounding whitespace", "  9876543210 ", "9876543210"},
		{"letters preserved for validation", "98765abcde", "98765abcde"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContact(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
