package phone

import (
	"encoding/json"
	"net/http"
)

type phoneRequest struct {
	Phone string `json:"phone"`
}

// Handler serves POST /api/verify/phone.
func Handler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req phoneRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Phone == "" {
			http.Error(w, "phone required", http.StatusBadRequest)
			return
		}

		res, err := c.Check(r.Context(), req.Phone)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}
