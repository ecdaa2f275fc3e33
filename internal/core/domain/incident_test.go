package domain

import (
	"testing"
	"time"
)

func TestIncidentActive(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name string
		inc  Incident
		want bool
	}{
		{"investigating", Incident{State: StateInvestigating, StartUTC: &now}, true},
		{"identified", Incident{State: StateIdentified}, true},
		{"unknown state counts as open", Incident{State: StateUnknown}, true},
		{"resolved", Incident{State: StateResolved}, false},
		{"scheduled maintenance", Incident{State: StateInvestigating, Scheduled: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inc.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReportHasRealIncidents(t *testing.T) {
	r := Report{Scheduled: []Incident{{Title: "[Scheduled] DB maintenance", Scheduled: true}}}
	if r.HasRealIncidents() {
		t.Error("scheduled-only report must not count as having real incidents")
	}
	r.Incidents = append(r.Incidents, Incident{Title: "API outage", State: StateInvestigating})
	if !r.HasRealIncidents() {
		t.Error("expected real incidents")
	}
}
