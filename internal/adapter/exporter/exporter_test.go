package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

func sampleReport(vendor, display string, ok bool) domain.Report {
	r := domain.Report{
		Vendor:      vendor,
		DisplayName: display,
		GeneratedAt: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
		ComponentLines: []string{
			"Platform Operational",
		},
		IncidentLines: []string{
			"No incidents reported today.",
		},
		OverallOK: ok,
	}
	if !ok {
		start := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
		r.Incidents = []domain.Incident{{
			Vendor:   vendor,
			Title:    "Elevated API latency",
			State:    domain.StateInvestigating,
			StartUTC: &start,
		}}
		r.IncidentLines = []string{"• Investigating — Elevated API latency (09:00 UTC)"}
	}
	return r
}

func TestRenderReportLayout(t *testing.T) {
	r := sampleReport("qualys", "Qualys", true)
	r.Banner = "All Systems Operational"

	out := RenderReport(r)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Qualys - Incident Status" {
		t.Errorf("unexpected header line %q", lines[0])
	}
	if lines[1] != "Checked at 2025-06-14 12:00 UTC" {
		t.Errorf("unexpected timestamp line %q", lines[1])
	}
	if !strings.Contains(out, "All Systems Operational") {
		t.Error("banner missing from output")
	}
	if !strings.Contains(out, "Platform Operational") {
		t.Error("component summary missing from output")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("rendered message should end with a newline")
	}
}

func TestRenderReportFallsBackToVendorID(t *testing.T) {
	r := sampleReport("netskope", "", true)
	out := RenderReport(r)
	if !strings.HasPrefix(out, "netskope - Incident Status") {
		t.Errorf("expected vendor id header, got %q", strings.SplitN(out, "\n", 2)[0])
	}
}

func TestStatusWord(t *testing.T) {
	if got := StatusWord(sampleReport("a", "A", true)); got != "OK" {
		t.Errorf("expected OK, got %q", got)
	}
	if got := StatusWord(sampleReport("a", "A", false)); got != "ATTENTION" {
		t.Errorf("expected ATTENTION, got %q", got)
	}

	// OverallOK alone is not enough when real incidents were extracted.
	r := sampleReport("a", "A", false)
	r.OverallOK = true
	if got := StatusWord(r); got != "ATTENTION" {
		t.Errorf("expected ATTENTION for OK flag with incidents, got %q", got)
	}
}

func TestBuildDigestCounts(t *testing.T) {
	now := time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)
	d := BuildDigest([]domain.Report{
		sampleReport("trendmicro", "Trend Micro", false),
		sampleReport("qualys", "Qualys", true),
		sampleReport("netskope", "Netskope", true),
	}, now)

	if d.Vendors != 3 || d.OK != 2 || d.Attention != 1 {
		t.Fatalf("unexpected counts: vendors=%d ok=%d attention=%d", d.Vendors, d.OK, d.Attention)
	}
	if d.ID == "" {
		t.Error("expected digest id to be set")
	}
	if !d.GeneratedAt.Equal(now) {
		t.Errorf("expected GeneratedAt %v, got %v", now, d.GeneratedAt)
	}

	// Reports are ordered by vendor id regardless of input order.
	wantOrder := []string{"netskope", "qualys", "trendmicro"}
	for i, r := range d.Reports {
		if r.Vendor != wantOrder[i] {
			t.Errorf("position %d: expected %q, got %q", i, wantOrder[i], r.Vendor)
		}
	}
}

func TestDigestText(t *testing.T) {
	now := time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)
	d := BuildDigest([]domain.Report{
		sampleReport("qualys", "Qualys", true),
		sampleReport("trendmicro", "Trend Micro", false),
	}, now)

	text := d.Text()
	if !strings.Contains(text, "2 vendors checked: 1 OK, 1 need attention") {
		t.Errorf("summary line missing: %q", strings.SplitN(text, "\n", 3)[1])
	}
	if !strings.Contains(text, "Qualys - Incident Status") {
		t.Error("per-vendor section missing")
	}
	if !strings.Contains(text, "Elevated API latency") {
		t.Error("incident line missing")
	}
}

func TestDigestHTML(t *testing.T) {
	now := time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)
	d := BuildDigest([]domain.Report{
		sampleReport("qualys", "Qualys", true),
	}, now)

	html, err := d.HTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h2>Qualys — OK</h2>") {
		t.Errorf("vendor heading missing from HTML: %s", html)
	}
	if !strings.Contains(html, "1 vendors, 1 OK, 0 need attention") {
		t.Error("summary paragraph missing from HTML")
	}
	if !strings.Contains(html, d.ID) {
		t.Error("digest id missing from HTML footer")
	}
}
