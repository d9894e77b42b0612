package geocoding

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	doubleComma   = regexp.MustCompile(`,\s*,`)
)

// NormalizeAddress trims, collapses whitespace and removes duplicate commas
func NormalizeAddress(address string) string {
	normalized := whitespaceRun.ReplaceAllString(strings.TrimSpace(address), " ")
	for doubleComma.MatchString(normalized) {
		normalized = doubleComma.ReplaceAllString(normalized, ",")
	}
	return normalized
}
