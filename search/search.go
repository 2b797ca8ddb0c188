package search

import "context"

// Result is one ranked web hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Listing is one shopping hit. Price is the raw string as returned by the
// upstream ("R 1,299.00"); parsing happens in the deal checker.
type Listing struct {
	Title  string `json:"title"`
	Price  string `json:"price"`
	Source string `json:"source"`
}

// Provider answers web and shopping queries. Implementations must degrade
// to a nil slice on any timeout, non-2xx, or malformed body; collectors
// treat an empty result set as absence of signal, never as a failure.
type Provider interface {
	Search(ctx context.Context, query string) []Result
	Shopping(ctx context.Context, query string) []Listing
}

// Chain tries providers in order and returns the first non-empty answer.
type Chain []Provider

func (c Chain) Search(ctx context.Context, query string) []Result {
	for _, p := range c {
		if res := p.Search(ctx, query); len(res) > 0 {
			return res
		}
	}
	return nil
}

func (c Chain) Shopping(ctx context.Context, query string) []Listing {
	for _, p := range c {
		if res := p.Shopping(ctx, query); len(res) > 0 {
			return res
		}
	}
	return nil
}
