package job

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"checkitsa/ai"
	"checkitsa/risk"
	"checkitsa/search"
)

// Weights for the job-posting collectors.
const (
	weightUpfrontPayment  = 55
	weightFreeEmail       = 30
	weightScamPhrase      = 15
	scamPhraseCap         = 30
	weightFreeHostingLink = 25
	weightKnownJobBoard   = -20
	weightNoMXRecord      = 15
	weightCompanyRepHit   = 10
	companyRepCap         = 30
)

// RuleTables are the static lists the job collectors match against,
// injected so tests can swap them.
type RuleTables struct {
	UpfrontPhrases []string
	FreeEmail      map[string]bool
	ScamPhrases    []string
	FreeHosting    []string
	JobBoards      []string
}

func DefaultRuleTables() RuleTables {
	return RuleTables{
		UpfrontPhrases: []string{
			"admin fee",
			"registration fee",
			"training fee",
			"starter kit",
			"upfront payment",
			"joining fee",
		},
		FreeEmail: map[string]bool{
			"gmail.com":      true,
			"yahoo.com":      true,
			"outlook.com":    true,
			"hotmail.com":    true,
			"icloud.com":     true,
			"protonmail.com": true,
			"webmail.co.za":  true,
		},
		ScamPhrases: []string{
			"no experience necessary",
			"earn r", // "earn R5000 per week"
			"whatsapp only",
			"immediate start, no interview",
			"work from home, no skills",
			"limited positions act now",
		},
		FreeHosting: []string{
			"wixsite.com",
			"weebly.com",
			"blogspot.com",
			"wordpress.com",
			"site123.me",
			"yolasite.com",
		},
		JobBoards: []string{
			"pnet.co.za",
			"careers24",
			"careerjunction",
			"linkedin.com",
			"indeed.com",
		},
	}
}

// MXLookup reports whether a domain publishes MX records. Swapped for a
// stub in tests; the default hits DNS.
type MXLookup func(domain string) bool

func HasMX(domain string) bool {
	mx, err := net.LookupMX(domain)
	return err == nil && len(mx) > 0
}

// Checker scores a job posting. Provider and AI may be nil.
type Checker struct {
	Tables   RuleTables
	Provider search.Provider
	MX       MXLookup
	AI       *ai.GeminiClient
}

func NewChecker(provider search.Provider, aiClient *ai.GeminiClient) *Checker {
	return &Checker{
		Tables:   DefaultRuleTables(),
		Provider: provider,
		MX:       HasMX,
		AI:       aiClient,
	}
}

// Result is the job-check response.
type Result struct {
	Signals   []risk.Signal `json:"signals"`
	Score     int           `json:"score"`
	Verdict   string        `json:"verdict"`
	IsSafe    bool          `json:"is_safe"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
}

// Check scores one posting. Description and email cannot both be empty;
// that is the only fatal input error.
func (c *Checker) Check(ctx context.Context, description, email, company string) (Result, error) {
	description = strings.TrimSpace(description)
	email = strings.TrimSpace(strings.ToLower(email))
	company = strings.TrimSpace(company)
	if description == "" && email == "" {
		return Result{}, fmt.Errorf("description or email required")
	}

	lower := strings.ToLower(description)
	var signals []risk.Signal

	if phrase, ok := containsAny(lower, c.Tables.UpfrontPhrases); ok {
		signals = append(signals, risk.Signal{
			Name: "upfront_payment_request", Weight: weightUpfrontPayment, Triggered: true,
			Evidence: fmt.Sprintf("posting asks for %q", phrase),
		})
	}

	signals = append(signals, c.emailSignals(email)...)

	if matches := allMatches(lower, c.Tables.ScamPhrases); len(matches) > 0 {
		penalty := len(matches) * weightScamPhrase
		if penalty > scamPhraseCap {
			penalty = scamPhraseCap
		}
		signals = append(signals, risk.Signal{
			Name: "scam_phrases", Weight: penalty, Triggered: true,
			Evidence: strings.Join(matches, "; "),
		})
	}

	if host, ok := containsAny(lower, c.Tables.FreeHosting); ok {
		signals = append(signals, risk.Signal{
			Name: "free_hosting_link", Weight: weightFreeHostingLink, Triggered: true,
			Evidence: fmt.Sprintf("links to free-hosting platform %q", host),
		})
	}

	if board, ok := containsAny(lower, c.Tables.JobBoards); ok {
		signals = append(signals, risk.Signal{
			Name: "known_job_board", Weight: weightKnownJobBoard, Triggered: true,
			Evidence: fmt.Sprintf("references established job board %q", board),
		})
	}

	if company != "" && c.Provider != nil {
		results := c.Provider.Search(ctx, search.ReputationQuery(company))
		if hits, evidence := search.CountFlagged(results, search.FlagTerms); hits > 0 {
			penalty := hits * weightCompanyRepHit
			if penalty > companyRepCap {
				penalty = companyRepCap
			}
			signals = append(signals, risk.Signal{
				Name: "company_reputation_hits", Weight: penalty, Triggered: true,
				Evidence: strings.Join(evidence, "; "),
			})
		}
	}

	score := risk.Score(signals)
	verdict := risk.JobVerdict(score)
	target := company
	if target == "" {
		target = email
	}
	return Result{
		Signals:   signals,
		Score:     score,
		Verdict:   verdict,
		IsSafe:    risk.JobSafe(score),
		Message:   ai.Summarize(ctx, c.AI, "job posting", target, score, verdict, signals),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (c *Checker) emailSignals(email string) []risk.Signal {
	if email == "" || !strings.Contains(email, "@") {
		return nil
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if domain == "" {
		return nil
	}
	if c.Tables.FreeEmail[domain] {
		return []risk.Signal{{
			Name: "free_email_recruiter", Weight: weightFreeEmail, Triggered: true,
			Evidence: fmt.Sprintf("recruiter uses free provider %q", domain),
		}}
	}
	// A corporate domain that cannot receive mail is a throwaway.
	if c.MX != nil && !c.MX(domain) {
		return []risk.Signal{{
			Name: "recruiter_domain_no_mx", Weight: weightNoMXRecord, Triggered: true,
			Evidence: fmt.Sprintf("domain %q publishes no MX records", domain),
		}}
	}
	return nil
}

func containsAny(text string, entries []string) (string, bool) {
	for _, e := range entries {
		if strings.Contains(text, strings.ToLower(e)) {
			return e, true
		}
	}
	return "", false
}

func allMatches(text string, entries []string) []string {
	var out []string
	for _, e := range entries {
		if strings.Contains(text, strings.ToLower(e)) {
			out = append(out, e)
		}
	}
	return out
}
