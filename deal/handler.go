package deal

import (
	"encoding/json"
	"net/http"
)

type dealRequest struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
}

// Handler serves POST /api/pro/deal-check.
func Handler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dealRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		res, err := c.Check(r.Context(), req.Product, req.Price)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}
