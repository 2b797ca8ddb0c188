package job

import (
	"context"
	"strings"
	"testing"

	"checkitsa/risk"
	"checkitsa/search"
)

type stubProvider struct {
	results []search.Result
}

func (s stubProvider) Search(ctx context.Context, q string) []search.Result    { return s.results }
func (s stubProvider) Shopping(ctx context.Context, q string) []search.Listing { return nil }

func newTestChecker(mxOK bool) *Checker {
	return &Checker{
		Tables:   DefaultRuleTables(),
		Provider: nil,
		MX:       func(domain string) bool { return mxOK },
	}
}

func findSignal(signals []risk.Signal, name string) (risk.Signal, bool) {
	for _, s := range signals {
		if s.Name == name {
			return s, true
		}
	}
	return risk.Signal{}, false
}

func TestAdminFeePlusGmailIsHighRisk(t *testing.T) {
	c := newTestChecker(true)
	res, err := c.Check(context.Background(),
		"Great opportunity! Pay a small admin fee to secure your position.",
		"jobs@gmail.com", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	upfront, ok := findSignal(res.Signals, "upfront_payment_request")
	if !ok || upfront.Weight != 55 {
		t.Errorf("upfront signal = %+v, want weight 55", upfront)
	}
	free, ok := findSignal(res.Signals, "free_email_recruiter")
	if !ok || free.Weight != 30 {
		t.Errorf("free email signal = %+v, want weight 30", free)
	}
	if res.Score != 85 {
		t.Errorf("score = %d, want 85", res.Score)
	}
	if res.Verdict != risk.JobHighRisk {
		t.Errorf("verdict = %q, want %q", res.Verdict, risk.JobHighRisk)
	}
	if res.IsSafe {
		t.Error("is_safe = true, want false")
	}
}

func TestCorporateEmailWithMXIsClean(t *testing.T) {
	c := newTestChecker(true)
	res, err := c.Check(context.Background(),
		"Senior accountant role at our Sandton office. Formal interview process applies.",
		"recruitment@bigfirm.co.za", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score = %d, want 0; signals: %v", res.Score, res.Signals)
	}
	if res.Verdict != risk.JobLowRisk {
		t.Errorf("verdict = %q, want %q", res.Verdict, risk.JobLowRisk)
	}
	if !res.IsSafe {
		t.Error("is_safe = false, want true")
	}
}

func TestCorporateDomainWithoutMX(t *testing.T) {
	c := newTestChecker(false)
	res, err := c.Check(context.Background(), "Office admin needed.", "hr@ghost-company.co.za", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	sig, ok := findSignal(res.Signals, "recruiter_domain_no_mx")
	if !ok || sig.Weight != 15 {
		t.Errorf("no-mx signal = %+v, want weight 15", sig)
	}
}

func TestScamPhrasesStackWithCap(t *testing.T) {
	c := newTestChecker(true)
	desc := "No experience necessary! Earn R8000 weekly, whatsapp only, immediate start, no interview."
	res, err := c.Check(context.Background(), desc, "", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	sig, ok := findSignal(res.Signals, "scam_phrases")
	if !ok {
		t.Fatal("scam_phrases signal missing")
	}
	if sig.Weight != 30 {
		t.Errorf("scam phrase penalty = %d, want 30 (capped)", sig.Weight)
	}
	if !strings.Contains(sig.Evidence, "no experience necessary") {
		t.Errorf("evidence missing matched phrase: %q", sig.Evidence)
	}
}

func TestJobBoardMentionSubtracts(t *testing.T) {
	c := newTestChecker(true)
	res, err := c.Check(context.Background(),
		"Apply via our listing on pnet.co.za. Admin fee of R150 applies.", "", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	board, ok := findSignal(res.Signals, "known_job_board")
	if !ok || board.Weight != -20 {
		t.Errorf("job board signal = %+v, want weight -20", board)
	}
	// 55 - 20 = 35
	if res.Score != 35 {
		t.Errorf("score = %d, want 35", res.Score)
	}
	if res.Verdict != risk.JobMediumRisk {
		t.Errorf("verdict = %q, want %q", res.Verdict, risk.JobMediumRisk)
	}
}

func TestFreeHostingLinkPenalty(t *testing.T) {
	c := newTestChecker(true)
	res, err := c.Check(context.Background(),
		"Apply at https://quickjobs.wixsite.com/hiring today", "", "")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	sig, ok := findSignal(res.Signals, "free_hosting_link")
	if !ok || sig.Weight != 25 {
		t.Errorf("free hosting signal = %+v, want weight 25", sig)
	}
}

func TestCompanyReputationSearch(t *testing.T) {
	c := newTestChecker(true)
	c.Provider = stubProvider{results: []search.Result{
		{Title: "QuickCash Jobs scam warning", Snippet: "multiple complaints"},
		{Title: "Is QuickCash legit?", Snippet: "beware, they ask for money"},
	}}
	res, err := c.Check(context.Background(), "Earn money fast.", "", "QuickCash Jobs")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	sig, ok := findSignal(res.Signals, "company_reputation_hits")
	if !ok || sig.Weight != 20 {
		t.Errorf("reputation signal = %+v, want weight 20 (2 hits)", sig)
	}
}

func TestEmptyInputRejected(t *testing.T) {
	c := newTestChecker(true)
	if _, err := c.Check(context.Background(), "", "", "Some Co"); err == nil {
		t.Error("empty description and email accepted")
	}
}
