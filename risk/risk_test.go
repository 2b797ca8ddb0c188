package risk

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(-15); got != 0 {
		t.Errorf("Clamp(-15) = %d, want 0", got)
	}
	if got := Clamp(0); got != 0 {
		t.Errorf("Clamp(0) = %d, want 0", got)
	}
	if got := Clamp(67); got != 67 {
		t.Errorf("Clamp(67) = %d, want 67", got)
	}
	if got := Clamp(100); got != 100 {
		t.Errorf("Clamp(100) = %d, want 100", got)
	}
	if got := Clamp(110); got != 100 {
		t.Errorf("Clamp(110) = %d, want 100", got)
	}
	// clamping an already-clamped value changes nothing
	if got := Clamp(Clamp(250)); got != 100 {
		t.Errorf("Clamp(Clamp(250)) = %d, want 100", got)
	}
}

func TestScoreSumsOnlyTriggered(t *testing.T) {
	signals := []Signal{
		{Name: "free_host", Weight: 65, Triggered: true},
		{Name: "no_privacy_policy", Weight: 15, Triggered: true},
		{Name: "shortener", Weight: 45, Triggered: false},
	}
	if got := Score(signals); got != 80 {
		t.Errorf("Score = %d, want 80", got)
	}
}

func TestScoreClampsOverflow(t *testing.T) {
	signals := []Signal{
		{Name: "free_host", Weight: 65, Triggered: true},
		{Name: "no_privacy_policy", Weight: 15, Triggered: true},
		{Name: "no_terms", Weight: 10, Triggered: true},
		{Name: "domain_age_unknown_unindexed", Weight: 20, Triggered: true},
	}
	if got := Score(signals); got != 100 {
		t.Errorf("Score = %d, want 100 (110 clamped)", got)
	}
}

func TestScoreNegativeWeights(t *testing.T) {
	signals := []Signal{
		{Name: "known_job_board", Weight: -20, Triggered: true},
		{Name: "scam_phrase", Weight: 15, Triggered: true},
	}
	if got := Score(signals); got != 0 {
		t.Errorf("Score = %d, want 0 (negative total clamped)", got)
	}
}

func TestScanVerdictThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, VerdictSafe},
		{40, VerdictSafe},
		{41, VerdictSuspicious},
		{60, VerdictSuspicious},
		{61, VerdictDangerous},
		{100, VerdictDangerous},
	}
	for _, c := range cases {
		if got := ScanVerdict(c.score); got != c.want {
			t.Errorf("ScanVerdict(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

// The safe flag has its own boundary at 30, which does not align with the
// label thresholds. A score of 35 is "Safe" by label yet safe=false.
func TestScanSafeBoundaryMismatch(t *testing.T) {
	if !ScanSafe(29) {
		t.Error("ScanSafe(29) = false, want true")
	}
	if ScanSafe(30) {
		t.Error("ScanSafe(30) = true, want false")
	}
	if ScanSafe(35) {
		t.Error("ScanSafe(35) = true, want false")
	}
	if got := ScanVerdict(35); got != VerdictSafe {
		t.Errorf("ScanVerdict(35) = %q, want %q", got, VerdictSafe)
	}
}

func TestJobVerdictThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, JobLowRisk},
		{29, JobLowRisk},
		{30, JobMediumRisk},
		{59, JobMediumRisk},
		{60, JobHighRisk},
		{85, JobHighRisk},
	}
	for _, c := range cases {
		if got := JobVerdict(c.score); got != c.want {
			t.Errorf("JobVerdict(%d) = %q, want %q", c.score, got, c.want)
		}
	}
	if JobSafe(30) {
		t.Error("JobSafe(30) = true, want false")
	}
	if !JobSafe(29) {
		t.Error("JobSafe(29) = false, want true")
	}
}
