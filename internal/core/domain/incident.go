package domain

import "time"

type IncidentState string

const (
	StateInvestigating IncidentState = "Investigating"
	StateIdentified    IncidentState = "Identified"
	StateUpdate        IncidentState = "Update"
	StateResolved      IncidentState = "Resolved"
	StateUnknown       IncidentState = "Unknown"
)

// Incident is the canonical record every vendor adapter produces.
// It is never mutated after construction.
type Incident struct {
	Vendor     string         `json:"vendor"`
	Title      string         `json:"title"`
	State      IncidentState  `json:"state"`
	StartUTC   *time.Time     `json:"start_utc,omitempty"`
	EndUTC     *time.Time     `json:"end_utc,omitempty"`
	Scheduled  bool           `json:"is_scheduled"`
	URL        string         `json:"url,omitempty"`
	RawExcerpt string         `json:"raw_excerpt,omitempty"`
}

// Active reports whether the incident should count as an open, real incident.
// Scheduled maintenance and resolved incidents never do.
func (i Incident) Active() bool {
	return !i.Scheduled && i.State != StateResolved
}

// Report is one vendor's extraction result: the canonical incident sequence
// (presentation order preserved) plus the pre-rendered summary lines the
// formatting collaborators consume.
type Report struct {
	Vendor      string    `json:"vendor"`
	DisplayName string    `json:"display_name,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`

	// Banner is the page-level status line, e.g. "All Systems Operational".
	Banner string `json:"banner,omitempty"`

	// ComponentLines is the compact per-group component summary.
	ComponentLines []string `json:"component_lines"`

	// IncidentLines is the rendered incident section, one entry per line
	// (or per paragraph for multi-line blocks).
	IncidentLines []string `json:"incident_lines"`

	// Incidents holds the real (non-scheduled) incidents in source order.
	Incidents []Incident `json:"incidents"`

	// Scheduled holds maintenance entries, kept for audit but excluded
	// from the real-incident sequence and counts.
	Scheduled []Incident `json:"scheduled,omitempty"`

	OverallOK bool `json:"overall_ok"`
}

// HasRealIncidents reports whether any non-scheduled incident was extracted.
func (r Report) HasRealIncidents() bool {
	return len(r.Incidents) > 0
}

// Snapshot is one fetched source document as handed to an adapter: raw
// markup (or a raw JSON body), possibly truncated by a page-load timeout.
// Adapters must accept whatever partial content is present.
type Snapshot struct {
	URL       string
	Body      string
	Truncated bool
	FetchedAt time.Time
}
