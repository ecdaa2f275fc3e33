package exporter

import (
	"fmt"
	"strings"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

// RenderReport turns one vendor's report into the plain-text message
// sent to notification channels. The layout is a header line with the
// generation timestamp, the page banner if the vendor has one, the
// compact component summary and the incident section.
func RenderReport(r domain.Report) string {
	name := r.DisplayName
	if name == "" {
		name = r.Vendor
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - Incident Status\n", name)
	fmt.Fprintf(&b, "Checked at %s\n", r.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))

	if r.Banner != "" {
		b.WriteString("\n")
		b.WriteString(r.Banner)
		b.WriteString("\n")
	}

	if len(r.ComponentLines) > 0 {
		b.WriteString("\n")
		for _, line := range r.ComponentLines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(r.IncidentLines) > 0 {
		b.WriteString("\n")
		for _, line := range r.IncidentLines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// StatusWord summarizes a report in one word for digests and logs.
func StatusWord(r domain.Report) string {
	if r.OverallOK && !r.HasRealIncidents() {
		return "OK"
	}
	return "ATTENTION"
}
