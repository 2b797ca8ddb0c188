package scan

import "strings"

// Lists holds the static rule tables the website collectors match against.
// They are injected into the Checker rather than read as globals so tests
// can swap them.
type Lists struct {
	Shorteners []string
	FreeHosts  []string
	Trusted    map[string]bool
}

// DefaultLists returns the production rule tables.
func DefaultLists() Lists {
	return Lists{
		Shorteners: []string{
			"bit.ly",
			"tinyurl.com",
			"goo.gl",
			"t.co",
			"ow.ly",
			"is.gd",
			"buff.ly",
			"cutt.ly",
			"rb.gy",
			"shorturl.at",
			"rebrand.ly",
			"tiny.cc",
		},
		FreeHosts: []string{
			"wixsite.com",
			"weebly.com",
			"blogspot.com",
			"wordpress.com",
			"site123.me",
			"yolasite.com",
			"webs.com",
			"000webhostapp.com",
			"godaddysites.com",
			"mystrikingly.com",
		},
		Trusted: map[string]bool{
			"google.com":         true,
			"takealot.com":       true,
			"amazon.com":         true,
			"facebook.com":       true,
			"microsoft.com":      true,
			"fnb.co.za":          true,
			"standardbank.co.za": true,
			"absa.co.za":         true,
			"nedbank.co.za":      true,
			"capitecbank.co.za":  true,
			"sars.gov.za":        true,
			"woolworths.co.za":   true,
			"checkers.co.za":     true,
			"pnp.co.za":          true,
		},
	}
}

// matchList reports whether any list entry appears inside the host.
// Containment, not equality: "bit.ly" matches "bit.ly" and "sub.bit.ly",
// but also any legitimate domain that happens to embed a shortener name.
// That false-positive risk is accepted; equality matching would miss the
// common trick of nesting a shortener under an extra label.
func matchList(host string, entries []string) (string, bool) {
	host = strings.ToLower(host)
	for _, entry := range entries {
		if strings.Contains(host, strings.ToLower(entry)) {
			return entry, true
		}
	}
	return "", false
}
