package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkitsa/search"
)

func TestRDAPCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domain/example.co.za" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"events":[
			{"eventAction":"last changed","eventDate":"2024-05-01T00:00:00Z"},
			{"eventAction":"registration","eventDate":"2019-03-14T08:30:00Z"}
		]}`))
	}))
	defer srv.Close()

	r := NewAgeResolver(nil)
	r.RDAPBaseURL = srv.URL

	created, err := r.rdapCreated(context.Background(), "example.co.za")
	if err != nil {
		t.Fatalf("rdapCreated error: %v", err)
	}
	want := time.Date(2019, 3, 14, 8, 30, 0, 0, time.UTC)
	if !created.Equal(want) {
		t.Errorf("created = %v, want %v", created, want)
	}
}

func TestRDAPCreatedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewAgeResolver(nil)
	r.RDAPBaseURL = srv.URL
	if _, err := r.rdapCreated(context.Background(), "missing.example"); err == nil {
		t.Error("want error for 404 RDAP response")
	}

	noEvent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"eventAction":"expiration","eventDate":"2030-01-01T00:00:00Z"}]}`))
	}))
	defer noEvent.Close()
	r.RDAPBaseURL = noEvent.URL
	if _, err := r.rdapCreated(context.Background(), "odd.example"); err == nil {
		t.Error("want error when no registration event present")
	}
}

func TestResolvePrefersRDAP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"eventAction":"registration","eventDate":"2010-01-01T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	r := NewAgeResolver(nil)
	r.RDAPBaseURL = srv.URL

	res := r.Resolve(context.Background(), "stable.example")
	if !res.Known {
		t.Fatal("age not resolved")
	}
	if res.Source != "rdap" {
		t.Errorf("source = %q, want rdap", res.Source)
	}
	if res.Days < 365*10 {
		t.Errorf("days = %d, want at least a decade", res.Days)
	}
}

func TestSnippetCreated(t *testing.T) {
	provider := stubProvider{results: map[string][]search.Result{
		"oldshop.co.za": {
			{Title: "OldShop - trading since 2012", Snippet: "established retailer"},
			{Title: "OldShop reviews", Snippet: "reviewed in 2023"},
		},
	}}
	r := NewAgeResolver(provider)

	created, indexed := r.snippetCreated(context.Background(), "oldshop.co.za")
	if !indexed {
		t.Error("indexed = false, want true")
	}
	if created.Year() != 2012 {
		t.Errorf("created year = %d, want 2012 (earliest plausible)", created.Year())
	}
}

func TestSnippetCreatedUnindexed(t *testing.T) {
	r := NewAgeResolver(stubProvider{})
	created, indexed := r.snippetCreated(context.Background(), "ghost.example")
	if indexed {
		t.Error("indexed = true, want false for empty results")
	}
	if !created.IsZero() {
		t.Errorf("created = %v, want zero", created)
	}
}

func TestSnippetCreatedIgnoresImplausibleYears(t *testing.T) {
	provider := stubProvider{results: map[string][]search.Result{
		"odd.example": {{Title: "odd.example", Snippet: "serial 1337 and year 3021"}},
	}}
	r := NewAgeResolver(provider)
	created, indexed := r.snippetCreated(context.Background(), "odd.example")
	if !indexed {
		t.Error("indexed = false, want true")
	}
	if !created.IsZero() {
		t.Errorf("created = %v, want zero (no plausible year)", created)
	}
}
