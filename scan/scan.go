package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"checkitsa/ai"
	"checkitsa/domainutil"
	"checkitsa/risk"
	"checkitsa/search"
)

// Penalty weights for the website collectors.
const (
	weightShortener           = 45
	weightFreeHost            = 65
	weightNoHTTPS             = 10
	weightAgeUnderWeek        = 40
	weightAgeUnderMonth       = 25
	weightAgeUnderQuarter     = 10
	weightAgeUnknownIndexed   = 5
	weightAgeUnknownUnindexed = 20
	weightNoPrivacyPolicy     = 15
	weightNoTerms             = 10
	weightReputationPerHit    = 10
	reputationPenaltyCap      = 30
)

// AgeLookup resolves a domain's registration age.
type AgeLookup interface {
	Resolve(ctx context.Context, domain string) AgeResult
}

// Checker runs the website collectors and scores the result. Provider and
// AI may be nil; the collectors that need them are skipped.
type Checker struct {
	Lists    Lists
	Provider search.Provider
	Age      AgeLookup
	Fetcher  PageFetcher
	Probe    func(host string) bool
	AI       *ai.GeminiClient
}

func NewChecker(provider search.Provider, aiClient *ai.GeminiClient) *Checker {
	return &Checker{
		Lists:    DefaultLists(),
		Provider: provider,
		Age:      NewAgeResolver(provider),
		Fetcher:  NewPageFetcher(),
		Probe:    ProbeHTTPS,
		AI:       aiClient,
	}
}

// Result is the website check response.
type Result struct {
	Input         string        `json:"input"`
	Host          string        `json:"host"`
	Domain        string        `json:"domain"`
	Signals       []risk.Signal `json:"signals"`
	Score         int           `json:"score"`
	Verdict       string        `json:"verdict"`
	Safe          bool          `json:"safe"`
	Message       string        `json:"message"`
	DomainAgeDays *int          `json:"domain_age_days,omitempty"`
	Timestamp     string        `json:"timestamp"`
}

// Check scans one URL. The only error it returns is unusable input;
// upstream failures degrade to missing signals.
func (c *Checker) Check(ctx context.Context, rawURL string) (Result, error) {
	host, err := domainutil.NormalizeHost(rawURL)
	if err != nil {
		return Result{}, err
	}
	root := domainutil.Root(host)

	res := Result{
		Input:     rawURL,
		Host:      host,
		Domain:    root,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	// Trusted domains short-circuit everything.
	if c.Lists.Trusted[root] {
		res.Score = 0
		res.Verdict = risk.VerdictVerifiedSafe
		res.Safe = true
		res.Message = fmt.Sprintf("%s is a known trusted domain. No further checks were run.", root)
		return res, nil
	}

	// Independent collectors with outbound calls run concurrently. None of
	// them fail the request; a slow or broken upstream just contributes
	// nothing.
	var (
		age         AgeResult
		html        string
		httpsOK     bool
		repHits     int
		repEvidence []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		age = c.Age.Resolve(gctx, root)
		return nil
	})
	g.Go(func() error {
		if h, err := c.Fetcher.FetchHTML(gctx, host); err == nil {
			html = h
		}
		return nil
	})
	g.Go(func() error {
		httpsOK = c.Probe(host)
		return nil
	})
	if c.Provider != nil {
		g.Go(func() error {
			results := c.Provider.Search(gctx, search.ReputationQuery(host))
			repHits, repEvidence = search.CountFlagged(results, search.FlagTerms)
			return nil
		})
	}
	_ = g.Wait()

	policy := CheckPolicyPages(ctx, host, html, c.Provider)

	var signals []risk.Signal

	if entry, ok := matchList(host, c.Lists.Shorteners); ok {
		signals = append(signals, risk.Signal{
			Name: "url_shortener", Weight: weightShortener, Triggered: true,
			Evidence: fmt.Sprintf("host matches shortener %q", entry),
		})
	}
	if entry, ok := matchList(host, c.Lists.FreeHosts); ok {
		signals = append(signals, risk.Signal{
			Name: "free_host", Weight: weightFreeHost, Triggered: true,
			Evidence: fmt.Sprintf("hosted on free site builder %q", entry),
		})
	}
	if !httpsOK {
		signals = append(signals, risk.Signal{
			Name: "no_https", Weight: weightNoHTTPS, Triggered: true,
			Evidence: "no TLS endpoint on port 443",
		})
	}

	signals = append(signals, c.ageSignals(age)...)

	if !policy.HasPrivacy {
		signals = append(signals, risk.Signal{
			Name: "no_privacy_policy", Weight: weightNoPrivacyPolicy, Triggered: true,
			Evidence: "no privacy policy found on site or in search",
		})
	}
	if !policy.HasTerms {
		signals = append(signals, risk.Signal{
			Name: "no_terms", Weight: weightNoTerms, Triggered: true,
			Evidence: "no terms of service found on site or in search",
		})
	}

	if repHits > 0 {
		penalty := repHits * weightReputationPerHit
		if penalty > reputationPenaltyCap {
			penalty = reputationPenaltyCap
		}
		signals = append(signals, risk.Signal{
			Name: "reputation_hits", Weight: penalty, Triggered: true,
			Evidence: strings.Join(repEvidence, "; "),
		})
	}

	res.Signals = signals
	res.Score = risk.Score(signals)
	res.Verdict = risk.ScanVerdict(res.Score)
	res.Safe = risk.ScanSafe(res.Score)
	if age.Known {
		days := age.Days
		res.DomainAgeDays = &days
	}
	res.Message = ai.Summarize(ctx, c.AI, "website", host, res.Score, res.Verdict, signals)
	return res, nil
}

func (c *Checker) ageSignals(age AgeResult) []risk.Signal {
	if age.Known {
		evidence := fmt.Sprintf("registered %s (%d days ago, via %s)",
			age.Created.Format("2006-01-02"), age.Days, age.Source)
		switch {
		case age.Days < 7:
			return []risk.Signal{{Name: "domain_under_7_days", Weight: weightAgeUnderWeek, Triggered: true, Evidence: evidence}}
		case age.Days < 30:
			return []risk.Signal{{Name: "domain_under_30_days", Weight: weightAgeUnderMonth, Triggered: true, Evidence: evidence}}
		case age.Days < 90:
			return []risk.Signal{{Name: "domain_under_90_days", Weight: weightAgeUnderQuarter, Triggered: true, Evidence: evidence}}
		default:
			return nil
		}
	}
	// Without a search provider there is no way to tell an unindexed ghost
	// from a quiet legitimate site, so the unknown-age collector is skipped.
	if c.Provider == nil {
		return nil
	}
	if age.Indexed {
		return []risk.Signal{{Name: "domain_age_unknown", Weight: weightAgeUnknownIndexed, Triggered: true,
			Evidence: "registration age unknown, but domain is indexed"}}
	}
	return []risk.Signal{{Name: "domain_age_unknown_unindexed", Weight: weightAgeUnknownUnindexed, Triggered: true,
		Evidence: "registration age unknown and domain is not indexed"}}
}
