package job

import (
	"encoding/json"
	"net/http"
)

type jobRequest struct {
	Description string `json:"description"`
	Email       string `json:"email"`
	Company     string `json:"company,omitempty"`
}

// Handler serves POST /api/verify/job.
func Handler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		res, err := c.Check(r.Context(), req.Description, req.Email, req.Company)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}
