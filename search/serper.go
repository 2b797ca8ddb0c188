package search

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const serperBaseURL = "https://google.serper.dev"

// Serper talks to the serper.dev search API. Queries are scoped to the
// South African market.
type Serper struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewSerper(apiKey string) *Serper {
	return &Serper{
		APIKey:  apiKey,
		BaseURL: serperBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl"`
	Num int    `json:"num,omitempty"`
}

func (s *Serper) Search(ctx context.Context, query string) []Result {
	var out struct {
		Organic []Result `json:"organic"`
	}
	if !s.post(ctx, "/search", query, &out) {
		return nil
	}
	return out.Organic
}

func (s *Serper) Shopping(ctx context.Context, query string) []Listing {
	var out struct {
		Shopping []Listing `json:"shopping"`
	}
	if !s.post(ctx, "/shopping", query, &out) {
		return nil
	}
	return out.Shopping
}

func (s *Serper) post(ctx context.Context, path, query string, out any) bool {
	body, err := json.Marshal(serperRequest{Q: query, GL: "za", Num: 10})
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		log.Printf("[serper] %s failed: %v", path, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[serper] %s status: %s", path, resp.Status)
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("[serper] %s decode: %v", path, err)
		return false
	}
	return true
}
