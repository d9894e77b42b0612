package geocoding

import (
	"strings"
	"testing"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Austin,   TX  ", "Austin, TX"},
		{"Austin,, TX", "Austin, TX"},
		{"Austin , , , TX", "Austin , TX"},
		{"Austin,\t\nTX", "Austin, TX"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.in); got != tt.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("  Austin,  TX ")
	if !strings.HasPrefix(key, "geocode:") {
		t.Fatalf("unexpected prefix: %s", key)
	}
	if key != CacheKey("austin, tx") {
		t.Errorf("cache key should be case and spacing insensitive: %s vs %s", key, CacheKey("austin, tx"))
	}
}
