package risk

// Signal is one weak indicator produced by a collector. Weight can be
// negative for trust bonuses. Untriggered signals carry evidence of a check
// that passed and do not count toward the score.
type Signal struct {
	Name      string `json:"name"`
	Weight    int    `json:"weight"`
	Triggered bool   `json:"triggered"`
	Evidence  string `json:"evidence,omitempty"`
}

// Score sums the weights of all triggered signals and clamps the total to
// [0,100]. There is no normalization by signal count: a scan where more
// collectors ran can land on a different score for the same target.
func Score(signals []Signal) int {
	total := 0
	for _, s := range signals {
		if s.Triggered {
			total += s.Weight
		}
	}
	return Clamp(total)
}

func Clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// Verdicts used by the website scan.
const (
	VerdictSafe         = "Safe"
	VerdictSuspicious   = "Suspicious"
	VerdictDangerous    = "Dangerous"
	VerdictVerifiedSafe = "Verified Safe"
)

// ScanVerdict maps a clamped score to the website-scan label.
func ScanVerdict(score int) string {
	switch {
	case score > 60:
		return VerdictDangerous
	case score > 40:
		return VerdictSuspicious
	default:
		return VerdictSafe
	}
}

// ScanSafe is the boolean flag returned next to the verdict label. Its
// boundary (30) does not line up with the label thresholds (40/60): a score
// of 35 is labeled Safe but reported safe=false. That mismatch is carried
// over from the production rules on purpose; do not unify the two.
func ScanSafe(score int) bool {
	return score < 30
}

// Verdicts used by the job-posting check.
const (
	JobLowRisk    = "Low Risk"
	JobMediumRisk = "Medium Risk"
	JobHighRisk   = "High Risk"
)

func JobVerdict(score int) string {
	switch {
	case score >= 60:
		return JobHighRisk
	case score >= 30:
		return JobMediumRisk
	default:
		return JobLowRisk
	}
}

func JobSafe(score int) bool {
	return score < 30
}
