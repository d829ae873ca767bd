package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"lowercase", "Hello", "hello"},
		{"trim", "  run  ", "run"},
		{"compress", "ice   cream", "ice cream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Running,", "running"},
		{"don't", "dont"},
		{"...", ""},
		{"Café", "café"},
		{"snake_case", "snake_case"},
		{"42!", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := CleanToken(tt.input); got != tt.want {
				t.Errorf("CleanToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("  running   worked\tbetter \n")
	want := []string{"running", "worked", "better"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
	if len(Tokenize("   ")) != 0 {
		t.Error("whitespace-only sentence must yield no tokens")
	}
}
