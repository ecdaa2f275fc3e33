package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

type fakeRepo struct {
	reports []domain.Report
	err     error
}

func (f *fakeRepo) SaveReport(ctx context.Context, report domain.Report) error {
	f.reports = append(f.reports, report)
	return f.err
}

func (f *fakeRepo) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Report
	for _, r := range f.reports {
		if !r.GeneratedAt.Before(since) {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) LatestPerVendor(ctx context.Context) ([]domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

func newTestServer(repo *fakeRepo) *httptest.Server {
	h := NewRestHandler(repo)
	h.now = func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) }
	router := mux.NewRouter()
	h.Routes(router)
	return httptest.NewServer(router)
}

func testReports() []domain.Report {
	return []domain.Report{
		{
			Vendor:      "qualys",
			DisplayName: "Qualys",
			GeneratedAt: time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC),
			OverallOK:   true,
		},
		{
			Vendor:      "netskope",
			DisplayName: "Netskope",
			GeneratedAt: time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC),
			Incidents:   []domain.Incident{{Vendor: "netskope", Title: "Elevated latency", State: domain.StateInvestigating}},
		},
	}
}

func getJSON(t *testing.T, url string, into interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("decoding response of %s: %v", url, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	server := newTestServer(&fakeRepo{})
	defer server.Close()

	var body map[string]interface{}
	resp := getJSON(t, server.URL+"/health", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "healthy" || body["service"] != "statuswatch-api" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestLatestReports(t *testing.T) {
	server := newTestServer(&fakeRepo{reports: testReports()})
	defer server.Close()

	var body struct {
		Count   int             `json:"count"`
		Reports []domain.Report `json:"reports"`
	}
	resp := getJSON(t, server.URL+"/api/v1/reports/latest", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Count != 2 || len(body.Reports) != 2 {
		t.Fatalf("expected 2 reports, got count=%d len=%d", body.Count, len(body.Reports))
	}
}

func TestVendorReport(t *testing.T) {
	server := newTestServer(&fakeRepo{reports: testReports()})
	defer server.Close()

	var report domain.Report
	resp := getJSON(t, server.URL+"/api/v1/reports/netskope", &report)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if report.Vendor != "netskope" || len(report.Incidents) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}

	resp = getJSON(t, server.URL+"/api/v1/reports/unknown", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown vendor, got %d", resp.StatusCode)
	}
}

func TestReportsSince(t *testing.T) {
	server := newTestServer(&fakeRepo{reports: testReports()})
	defer server.Close()

	// 12h window at fixed now 2025-06-14T12:00Z keeps only the qualys run.
	var body struct {
		Count   int             `json:"count"`
		Reports []domain.Report `json:"reports"`
	}
	resp := getJSON(t, server.URL+"/api/v1/reports?since=12h", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Count != 1 || body.Reports[0].Vendor != "qualys" {
		t.Fatalf("expected only qualys report, got %+v", body.Reports)
	}

	resp = getJSON(t, server.URL+"/api/v1/reports?since=yesterday", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad duration, got %d", resp.StatusCode)
	}

	resp = getJSON(t, server.URL+"/api/v1/reports?since=24h&limit=0", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", resp.StatusCode)
	}
}

func TestDigestFormats(t *testing.T) {
	server := newTestServer(&fakeRepo{reports: testReports()})
	defer server.Close()

	var body struct {
		Vendors   int    `json:"vendors"`
		OK        int    `json:"ok"`
		Attention int    `json:"attention"`
		ID        string `json:"id"`
	}
	resp := getJSON(t, server.URL+"/api/v1/digest", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Vendors != 2 || body.OK != 1 || body.Attention != 1 {
		t.Errorf("unexpected digest counts: %+v", body)
	}
	if body.ID == "" {
		t.Error("expected digest id")
	}

	resp, err := http.Get(server.URL + "/api/v1/digest?format=text")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain, got %q", ct)
	}

	resp, err = http.Get(server.URL + "/api/v1/digest?format=html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}

	resp = getJSON(t, server.URL+"/api/v1/digest?format=xml", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported format, got %d", resp.StatusCode)
	}
}

func TestRepositoryErrorsSurfaceAs500(t *testing.T) {
	server := newTestServer(&fakeRepo{err: errors.New("connection refused")})
	defer server.Close()

	for _, path := range []string{"/api/v1/reports/latest", "/api/v1/reports", "/api/v1/digest"} {
		resp := getJSON(t, server.URL+path, nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, resp.StatusCode)
		}
	}
}
