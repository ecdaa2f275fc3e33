package exporter

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

// Digest is the cross-vendor rollup built from the latest report of
// each vendor.
type Digest struct {
	ID          string
	GeneratedAt time.Time
	Vendors     int
	OK          int
	Attention   int
	Reports     []domain.Report
}

// BuildDigest merges the given reports into one digest, ordered by
// vendor id. Reports for the same vendor should already be reduced to
// the latest one by the caller.
func BuildDigest(reports []domain.Report, now time.Time) Digest {
	sorted := make([]domain.Report, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Vendor < sorted[j].Vendor })

	d := Digest{
		ID:          uuid.New().String(),
		GeneratedAt: now.UTC(),
		Vendors:     len(sorted),
		Reports:     sorted,
	}
	for _, r := range sorted {
		if StatusWord(r) == "OK" {
			d.OK++
		} else {
			d.Attention++
		}
	}
	return d
}

// Text renders the digest as the plain-text message used by chat
// notifiers.
func (d Digest) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vendor Status Digest — %s\n", d.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "%d vendors checked: %d OK, %d need attention\n", d.Vendors, d.OK, d.Attention)

	for _, r := range d.Reports {
		b.WriteString("\n")
		b.WriteString(RenderReport(r))
	}
	return b.String()
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"status": StatusWord,
	"utc": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 UTC")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Vendor Status Digest</title></head>
<body>
<h1>Vendor Status Digest</h1>
<p>Generated {{utc .GeneratedAt}} — {{.Vendors}} vendors, {{.OK}} OK, {{.Attention}} need attention.</p>
{{range .Reports}}
<h2>{{if .DisplayName}}{{.DisplayName}}{{else}}{{.Vendor}}{{end}} — {{status .}}</h2>
{{if .Banner}}<p>{{.Banner}}</p>{{end}}
{{if .ComponentLines}}<ul>{{range .ComponentLines}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .IncidentLines}}<pre>{{range .IncidentLines}}{{.}}
{{end}}</pre>{{end}}
{{end}}
<p><small>digest {{.ID}}</small></p>
</body>
</html>
`))

// HTML renders the digest as a standalone HTML page for email or the
// REST API.
func (d Digest) HTML() (string, error) {
	var b strings.Builder
	if err := digestTemplate.Execute(&b, d); err != nil {
		return "", fmt.Errorf("rendering digest %s: %w", d.ID, err)
	}
	return b.String(), nil
}
