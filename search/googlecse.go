package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const cseBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleCSE is the fallback web-search provider. The Custom Search JSON API
// has no shopping vertical, so Shopping always reports nothing.
type GoogleCSE struct {
	APIKey  string
	CX      string
	BaseURL string
	Client  *http.Client
}

func NewGoogleCSE(apiKey, cx string) *GoogleCSE {
	return &GoogleCSE{
		APIKey:  apiKey,
		CX:      cx,
		BaseURL: cseBaseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *GoogleCSE) Search(ctx context.Context, query string) []Result {
	q := url.Values{}
	q.Set("key", g.APIKey)
	q.Set("cx", g.CX)
	q.Set("q", query)
	q.Set("gl", "za")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		log.Printf("[cse] search failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[cse] search status: %s", resp.Status)
		return nil
	}

	var out struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[cse] decode: %v", err)
		return nil
	}

	results := make([]Result, 0, len(out.Items))
	for _, it := range out.Items {
		results = append(results, Result{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}
	return results
}

func (g *GoogleCSE) Shopping(ctx context.Context, query string) []Listing {
	return nil
}
