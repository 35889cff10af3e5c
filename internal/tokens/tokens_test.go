package tokens

import "testing"

func TestEstimate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"hello world, this is a test", 7},
	}
	for _, tt := range tests {
		if got := Estimate(tt.text); got != tt.want {
			t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("one two three four five six"); got != 6 {
		t.Errorf("expected 6 words, got %d", got)
	}
	if got := CountWords("  padded   spacing "); got != 2 {
		t.Errorf("expected 2 words, got %d", got)
	}
	if got := CountWords(""); got != 0 {
		t.Errorf("expected 0 words, got %d", got)
	}
}
