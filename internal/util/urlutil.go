package util

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL trims the input and adds an https scheme to bare hosts such
// as "youtu.be/abc". It fails when no host can be found.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("invalid URL %q: unsupported scheme %q", raw, u.Scheme)
	}
	return u.String(), nil
}
