package phone

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"checkitsa/ai"
	"checkitsa/risk"
	"checkitsa/search"
)

// Weights for the phone-number collectors.
const (
	weightPremiumPrefix   = 35
	weightReputationHit   = 10
	reputationCap         = 30
	weightManyReports     = 45
	weightSomeReports     = 20
	weightKnownMobileOnly = -5
)

// premiumPrefixes are number ranges with no legitimate reason to contact a
// consumer: SA premium-rate services and the satellite ranges used for
// callback (wangiri) fraud.
var premiumPrefixes = []string{
	"+2790", // SA premium rate 090x
	"+870",  // Inmarsat
	"+881",  // Global Mobile Satellite System
	"+882",  // international networks
	"+883",
}

// mobilePrefixes are ordinary SA mobile ranges (06x, 07x, 08x).
var mobilePrefixes = []string{"+276", "+277", "+278"}

// ReportCounter exposes the community-report count for a number. Nil when
// no datastore is configured; that collector is then skipped.
type ReportCounter interface {
	CountPhoneReports(ctx context.Context, number string) (int, error)
}

// Checker scores a phone number. Provider, Reports and AI may all be nil.
type Checker struct {
	Provider search.Provider
	Reports  ReportCounter
	AI       *ai.GeminiClient
}

func NewChecker(provider search.Provider, reports ReportCounter, aiClient *ai.GeminiClient) *Checker {
	return &Checker{Provider: provider, Reports: reports, AI: aiClient}
}

// Result is the phone-check response.
type Result struct {
	Input      string        `json:"input"`
	Normalized string        `json:"normalized"`
	Signals    []risk.Signal `json:"signals"`
	Score      int           `json:"score"`
	Verdict    string        `json:"verdict"`
	Safe       bool          `json:"safe"`
	Message    string        `json:"message"`
	Timestamp  string        `json:"timestamp"`
}

// Normalize strips formatting and rewrites national SA numbers to +27
// form. Reports failure for anything that does not look like a phone
// number afterwards.
func Normalize(raw string) (string, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting noise
		default:
			return "", false
		}
	}
	n := b.String()
	switch {
	case strings.HasPrefix(n, "+"):
	case strings.HasPrefix(n, "27") && len(n) == 11:
		n = "+" + n
	case strings.HasPrefix(n, "0") && len(n) == 10:
		n = "+27" + n[1:]
	default:
		return "", false
	}
	digits := len(n) - 1
	if digits < 9 || digits > 15 {
		return "", false
	}
	return n, true
}

// Check scores one number. The only error is an input that cannot be
// normalized into a plausible number.
func (c *Checker) Check(ctx context.Context, raw string) (Result, error) {
	number, ok := Normalize(raw)
	if !ok {
		return Result{}, fmt.Errorf("not a valid phone number: %q", raw)
	}

	res := Result{
		Input:      raw,
		Normalized: number,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	var signals []risk.Signal

	if prefix, ok := hasPrefix(number, premiumPrefixes); ok {
		signals = append(signals, risk.Signal{
			Name: "premium_rate_prefix", Weight: weightPremiumPrefix, Triggered: true,
			Evidence: fmt.Sprintf("number is in premium/satellite range %s", prefix),
		})
	}

	if c.Provider != nil {
		results := c.Provider.Search(ctx, search.ReputationQuery(number))
		if hits, evidence := search.CountFlagged(results, search.FlagTerms); hits > 0 {
			penalty := hits * weightReputationHit
			if penalty > reputationCap {
				penalty = reputationCap
			}
			signals = append(signals, risk.Signal{
				Name: "reputation_hits", Weight: penalty, Triggered: true,
				Evidence: strings.Join(evidence, "; "),
			})
		}
	}

	if c.Reports != nil {
		if count, err := c.Reports.CountPhoneReports(ctx, number); err != nil {
			log.Printf("[phone] report count failed for %s: %v", number, err)
		} else if count >= 3 {
			signals = append(signals, risk.Signal{
				Name: "community_reports", Weight: weightManyReports, Triggered: true,
				Evidence: fmt.Sprintf("%d community scam reports", count),
			})
		} else if count >= 1 {
			signals = append(signals, risk.Signal{
				Name: "community_reports", Weight: weightSomeReports, Triggered: true,
				Evidence: fmt.Sprintf("%d community scam report(s)", count),
			})
		}
	}

	// An ordinary mobile number with nothing against it gets a small
	// benefit of the doubt.
	if len(signals) == 0 {
		if prefix, ok := hasPrefix(number, mobilePrefixes); ok {
			signals = append(signals, risk.Signal{
				Name: "known_mobile_range", Weight: weightKnownMobileOnly, Triggered: true,
				Evidence: fmt.Sprintf("standard SA mobile range %s with no adverse findings", prefix),
			})
		}
	}

	res.Signals = signals
	res.Score = risk.Score(signals)
	res.Verdict = risk.ScanVerdict(res.Score)
	res.Safe = risk.ScanSafe(res.Score)
	res.Message = ai.Summarize(ctx, c.AI, "phone number", number, res.Score, res.Verdict, signals)
	return res, nil
}

func hasPrefix(number string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(number, p) {
			return p, true
		}
	}
	return "", false
}
