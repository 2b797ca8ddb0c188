package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"

	"checkitsa/search"
)

const rdapBaseURL = "https://rdap.org"

// AgeResult is the outcome of the registration-age chain. When Known is
// false, Indexed tells whether the reputation search saw the domain at all;
// a domain nobody has ever indexed is itself a weak signal.
type AgeResult struct {
	Known   bool
	Days    int
	Created time.Time
	Source  string
	Indexed bool
}

func (a AgeResult) Years() int {
	return a.Days / 365
}

// ageStrategy is one link in the resolution chain. Strategies are tried in
// order; the first one that produces a creation date wins.
type ageStrategy struct {
	name    string
	resolve func(ctx context.Context, domain string) (time.Time, error)
}

// AgeResolver finds out how old a domain registration is. It tries RDAP,
// then WHOIS, then falls back to scraping a registration year out of search
// snippets. Every upstream failure falls through silently to the next link.
type AgeResolver struct {
	RDAPBaseURL string
	HTTPClient  *http.Client
	Whois       *whois.Client
	Provider    search.Provider // may be nil
}

func NewAgeResolver(provider search.Provider) *AgeResolver {
	wc := whois.NewClient()
	wc.SetTimeout(5 * time.Second)
	return &AgeResolver{
		RDAPBaseURL: rdapBaseURL,
		HTTPClient:  &http.Client{Timeout: 5 * time.Second},
		Whois:       wc,
		Provider:    provider,
	}
}

func (r *AgeResolver) Resolve(ctx context.Context, domain string) AgeResult {
	strategies := []ageStrategy{
		{"rdap", r.rdapCreated},
		{"whois", r.whoisCreated},
	}
	for _, s := range strategies {
		created, err := s.resolve(ctx, domain)
		if err != nil || created.IsZero() {
			continue
		}
		return ageFromCreated(created, s.name, true)
	}

	if r.Provider == nil {
		return AgeResult{}
	}
	created, indexed := r.snippetCreated(ctx, domain)
	if !created.IsZero() {
		return ageFromCreated(created, "search", indexed)
	}
	return AgeResult{Indexed: indexed}
}

func ageFromCreated(created time.Time, source string, indexed bool) AgeResult {
	return AgeResult{
		Known:   true,
		Days:    int(time.Since(created).Hours() / 24),
		Created: created,
		Source:  source,
		Indexed: indexed,
	}
}

func (r *AgeResolver) rdapCreated(ctx context.Context, domain string) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.RDAPBaseURL+"/domain/"+domain, nil)
	if err != nil {
		return time.Time{}, err
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("rdap status: %s", resp.Status)
	}

	var body struct {
		Events []struct {
			EventAction string `json:"eventAction"`
			EventDate   string `json:"eventDate"`
		} `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, err
	}
	for _, ev := range body.Events {
		if ev.EventAction != "registration" {
			continue
		}
		created, err := time.Parse(time.RFC3339, ev.EventDate)
		if err == nil {
			return created, nil
		}
	}
	return time.Time{}, fmt.Errorf("no registration event for %s", domain)
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

func (r *AgeResolver) whoisCreated(ctx context.Context, domain string) (time.Time, error) {
	raw, err := r.Whois.Whois(domain)
	if err != nil {
		return time.Time{}, err
	}
	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		// Registries answer for registrable domains only; retry the parent
		// when handed a subdomain.
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return r.whoisCreated(ctx, strings.Join(parts[1:], "."))
		}
		return time.Time{}, fmt.Errorf("whois parse failed for %s", domain)
	}

	createdStr := strings.TrimSpace(p.Domain.CreatedDate)
	for _, layout := range whoisDateLayouts {
		if t, err := time.Parse(layout, createdStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable whois created date %q", createdStr)
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// snippetCreated is the last-resort strategy: search for the domain and pull
// the earliest plausible 4-digit year out of titles and snippets. Also the
// cheapest way to learn whether the domain is indexed at all.
func (r *AgeResolver) snippetCreated(ctx context.Context, domain string) (time.Time, bool) {
	results := r.Provider.Search(ctx, domain)
	if len(results) == 0 {
		return time.Time{}, false
	}

	nowYear := time.Now().Year()
	best := 0
	for _, res := range results {
		for _, match := range yearPattern.FindAllString(res.Title+" "+res.Snippet, -1) {
			year, err := strconv.Atoi(match)
			if err != nil || year < 1990 || year > nowYear {
				continue
			}
			if best == 0 || year < best {
				best = year
			}
		}
	}
	if best == 0 {
		return time.Time{}, true
	}
	log.Printf("[age] %s: registration year %d scraped from search snippets", domain, best)
	return time.Date(best, time.January, 1, 0, 0, 0, 0, time.UTC), true
}
