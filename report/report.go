package report

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"checkitsa/phone"
	"checkitsa/store"
)

// Storage is the slice of the datastore the report endpoints need.
type Storage interface {
	SaveReport(ctx context.Context, r store.Report) (string, error)
	RecentReports(ctx context.Context, limit int) ([]store.Report, error)
}

var validKinds = map[string]bool{
	"website": true,
	"phone":   true,
	"job":     true,
	"deal":    true,
}

type submitRequest struct {
	Kind    string `json:"kind"`
	Target  string `json:"target"`
	Comment string `json:"comment,omitempty"`
}

// SubmitHandler serves POST /api/reports: a user-filed scam report.
func SubmitHandler(s Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
		req.Target = strings.TrimSpace(req.Target)
		if !validKinds[req.Kind] || req.Target == "" {
			http.Error(w, "kind and target required", http.StatusBadRequest)
			return
		}
		// Phone reports are matched against future lookups, so store the
		// normalized form.
		if req.Kind == "phone" {
			normalized, ok := phone.Normalize(req.Target)
			if !ok {
				http.Error(w, "not a valid phone number", http.StatusBadRequest)
				return
			}
			req.Target = normalized
		}

		id, err := s.SaveReport(r.Context(), store.Report{
			Kind:    req.Kind,
			Target:  req.Target,
			Comment: req.Comment,
		})
		if err != nil {
			http.Error(w, "could not save report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	}
}

// RecentHandler serves GET /api/reports/recent.
func RecentHandler(s Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		reports, err := s.RecentReports(r.Context(), limit)
		if err != nil {
			http.Error(w, "could not load reports", http.StatusInternalServerError)
			return
		}
		if reports == nil {
			reports = []store.Report{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reports)
	}
}
