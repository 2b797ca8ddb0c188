package scan

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"checkitsa/store"
)

// ReportSaver persists finished checks. Nil disables persistence.
type ReportSaver interface {
	SaveReport(ctx context.Context, r store.Report) (string, error)
}

type scanRequest struct {
	URL string `json:"url"`
}

// Handler serves POST /api/scan.
func Handler(c *Checker, reports ReportSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.URL == "" {
			http.Error(w, "url required", http.StatusBadRequest)
			return
		}

		res, err := c.Check(r.Context(), req.URL)
		if err != nil {
			http.Error(w, "could not parse url", http.StatusBadRequest)
			return
		}

		if reports != nil {
			saveResult(reports, res)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}

// saveResult records the scan as a report row. Best effort: a database
// problem must never fail the check response.
func saveResult(reports ReportSaver, res Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	evidence, _ := json.Marshal(res.Signals)
	if _, err := reports.SaveReport(ctx, store.Report{
		Kind:     "website",
		Target:   res.Host,
		Score:    res.Score,
		Verdict:  res.Verdict,
		Evidence: evidence,
	}); err != nil {
		log.Printf("[scan] report save failed for %s: %v", res.Host, err)
	}
}
