package scan

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"checkitsa/search"
)

// ProbeHTTPS reports whether the host serves a TLS endpoint on 443.
func ProbeHTTPS(host string) bool {
	d := &net.Dialer{Timeout: 5 * time.Second}
	conn, err := tls.DialWithDialer(d, "tcp", host+":443", &tls.Config{ServerName: host})
	if err != nil {
		return false
	}
	defer conn.Close()
	return len(conn.ConnectionState().PeerCertificates) > 0
}

// PageFetcher pulls a page's HTML. Swapped for a stub in tests.
type PageFetcher interface {
	FetchHTML(ctx context.Context, host string) (string, error)
}

type httpFetcher struct {
	client *http.Client
}

func NewPageFetcher() PageFetcher {
	return &httpFetcher{client: &http.Client{Timeout: 4 * time.Second}}
}

func (f *httpFetcher) FetchHTML(ctx context.Context, host string) (string, error) {
	for _, scheme := range []string{"https://", "http://"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+host, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CheckItSA/1.0)")
		resp, err := f.client.Do(req)
		if err != nil {
			continue
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		if err != nil || resp.StatusCode >= 400 {
			continue
		}
		return string(body), nil
	}
	return "", fmt.Errorf("no reachable page for %s", host)
}

// PolicyPages is the result of looking for the two legal pages every
// legitimate store publishes.
type PolicyPages struct {
	HasPrivacy bool
	HasTerms   bool
}

// CheckPolicyPages tests the homepage HTML for the literal policy phrases.
// When a phrase is absent from the homepage it tries one site-restricted
// search before penalizing, since many sites link policies from a footer
// page the homepage fetch misses.
func CheckPolicyPages(ctx context.Context, host, html string, provider search.Provider) PolicyPages {
	html = strings.ToLower(html)

	pages := PolicyPages{
		HasPrivacy: strings.Contains(html, "privacy policy"),
		HasTerms: strings.Contains(html, "terms of service") ||
			strings.Contains(html, "terms and conditions"),
	}

	if provider == nil {
		return pages
	}
	if !pages.HasPrivacy {
		hits := provider.Search(ctx, fmt.Sprintf(`site:%s "privacy policy"`, host))
		pages.HasPrivacy = len(hits) > 0
	}
	if !pages.HasTerms {
		hits := provider.Search(ctx, fmt.Sprintf(`site:%s "terms and conditions"`, host))
		pages.HasTerms = len(hits) > 0
	}
	return pages
}
