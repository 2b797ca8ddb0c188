package domainutil

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeHost extracts a lowercase hostname from whatever the user pasted:
// a bare domain, a full URL, or a shortener path like "bit.ly/abc".
func NormalizeHost(raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", fmt.Errorf("empty input")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("no hostname in %q", raw)
	}
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("not a domain: %q", host)
	}
	return host, nil
}

// Root returns the registrable domain (eTLD+1), so shop.example.co.za maps
// to example.co.za rather than co.za. Falls back to the input host when the
// public suffix list has no answer.
func Root(host string) string {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
