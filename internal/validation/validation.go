package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateQuery checks the raw q parameter of a search request.
// An empty query is allowed; it simply matches nothing.
func ValidateQuery(q string, present bool, maxLen int) (bool, string) {
	if !present {
		return false, "query parameter q is required"
	}
	if maxLen > 0 && len([]rune(q)) > maxLen {
		return false, fmt.Sprintf("query must be at most %d characters", maxLen)
	}
	return true, ""
}

// ParseBool parses a boolean query flag. Accepts the usual spellings
// (true/false, 1/0, yes/no, on/off, t/f, y/n) in any case; an empty value
// yields the fallback.
func ParseBool(value string, fallback bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", value)
	}
}
