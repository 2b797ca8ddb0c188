package search

import (
	"fmt"
	"strings"
)

// FlagTerms are the negative keywords a reputation hit must mention
// before it counts against the target.
var FlagTerms = []string{"scam", "fraud", "complaint", "beware"}

// ReputationQuery builds the web query combining a target identifier with
// the negative terms.
func ReputationQuery(target string) string {
	return fmt.Sprintf(`"%s" scam OR fraud OR complaint`, target)
}

// CountFlagged counts results whose title or snippet mentions any flag
// term and returns the matching titles verbatim as evidence.
func CountFlagged(results []Result, terms []string) (int, []string) {
	hits := 0
	var evidence []string
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Snippet)
		for _, term := range terms {
			if strings.Contains(text, term) {
				hits++
				evidence = append(evidence, r.Title)
				break
			}
		}
	}
	return hits, evidence
}
