package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Tanaka", "Tanaka"},
		{"leading and trailing", "  Tanaka  ", "Tanaka"},
		{"interior runs collapse", "Tanaka   Hanako", "Tanaka Hanako"},
		{"tabs and newlines", "\tTanaka\nHanako\t", "Tanaka Hanako"},
		{"whitespace only", "   \t\n ", ""},
		{"empty", "", ""},
		{"full-width name kept", "田中 花子", "田中 花子"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Sato  "); got != "Sato" {
		t.Errorf("NormalizeName = %q, want %q", got, "Sato")
	}
}
