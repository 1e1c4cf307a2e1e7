package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseTickers normalizes a comma separated ticker list: tokens are trimmed,
// empties dropped, duplicates removed (first occurrence wins), uppercased and
// rejoined with commas.
func ParseTickers(raw string) string {
	if raw == "" {
		return ""
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		ticker := strings.ToUpper(strings.TrimSpace(part))
		if ticker == "" {
			continue
		}
		if _, dup := seen[ticker]; dup {
			continue
		}
		seen[ticker] = struct{}{}
		out = append(out, ticker)
	}
	return strings.Join(out, ",")
}

// ParseLinks tokenizes raw input on commas and newlines and keeps only
// absolute http/https URLs, normalized through net/url. Malformed tokens and
// other schemes are silently dropped. Order is preserved.
func ParseLinks(raw string) []string {
	if raw == "" {
		return nil
	}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var clean []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parsed, err := url.Parse(token)
		if err != nil {
			continue
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			continue
		}
		if parsed.Path == "" {
			parsed.Path = "/"
		}
		clean = append(clean, parsed.String())
	}
	return clean
}

// ClampInt parses raw as an integer, substituting def when it is not numeric,
// and clamps the result into [min, max].
func ClampInt(raw string, def, min, max int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Truncate caps s at n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
