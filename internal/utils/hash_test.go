package utils

import (
	"strings"
	"testing"
)

func TestDigest_KnownVectors(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
		want      string
	}{
		{
			name:      "bootstrap admin password",
			plaintext: "admin123",
			want:      "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
		},
		{
			name:      "empty string",
			plaintext: "",
			want:      "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:      "typical staff password",
			plaintext: "pw123",
			want:      "23d47445adfb8991789b459b6ba1b974d727d310aa9d80b7c2875b9430c0ba25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Digest(tt.plaintext)
			if got != tt.want {
				t.Errorf("Digest(%q) = %s, want %s", tt.plaintext, got, tt.want)
			}
		})
	}
}

func TestDigest_Deterministic(t *testing.T) {
	a := Digest("secret")
	b := Digest("secret")
	if a != b {
		t.Errorf("same input produced different digests: %s vs %s", a, b)
	}
}

func TestDigest_Shape(t *testing.T) {
	d := Digest("anything at all")

	if len(d) != DigestLen {
		t.Errorf("expected %d hex chars, got %d", DigestLen, len(d))
	}
	if d != strings.ToLower(d) {
		t.Errorf("digest must be lowercase, got %s", d)
	}
	for _, r := range d {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("non-hex rune %q in digest %s", r, d)
		}
	}
}

func TestDigest_DistinctInputs(t *testing.T) {
	if Digest("pw123") == Digest("pw124") {
		t.Error("different inputs produced the same digest")
	}
}
