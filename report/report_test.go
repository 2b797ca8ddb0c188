package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"checkitsa/store"
)

type stubStorage struct {
	saved  []store.Report
	recent []store.Report
}

func (s *stubStorage) SaveReport(ctx context.Context, r store.Report) (string, error) {
	s.saved = append(s.saved, r)
	return "id-1", nil
}

func (s *stubStorage) RecentReports(ctx context.Context, limit int) ([]store.Report, error) {
	return s.recent, nil
}

func TestSubmitNormalizesPhoneTarget(t *testing.T) {
	st := &stubStorage{}
	h := SubmitHandler(st)

	req := httptest.NewRequest(http.MethodPost, "/api/reports",
		strings.NewReader(`{"kind":"phone","target":"082 555 1234","comment":"called about a fake SARS refund"}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	if len(st.saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(st.saved))
	}
	if st.saved[0].Target != "+27825551234" {
		t.Errorf("target = %q, want normalized +27825551234", st.saved[0].Target)
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	h := SubmitHandler(&stubStorage{})

	for _, body := range []string{
		`{"kind":"","target":"x"}`,
		`{"kind":"website","target":""}`,
		`{"kind":"carrier-pigeon","target":"x"}`,
		`{"kind":"phone","target":"not a number"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRecentReturnsEmptyListNotNull(t *testing.T) {
	h := RecentHandler(&stubStorage{})
	req := httptest.NewRequest(http.MethodGet, "/api/reports/recent", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}
