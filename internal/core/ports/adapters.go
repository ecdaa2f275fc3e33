package ports

import (
	"context"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

// StatusAdapter is the per-vendor extraction contract. Extract is a pure,
// deterministic transformation: it never returns an error and never panics
// on malformed input: unparseable fragments are skipped, truncated
// documents yield whatever is structurally present. Snapshots arrive in
// the same order as Sources().
type StatusAdapter interface {
	Name() string
	Sources() []string
	Extract(snaps []domain.Snapshot) domain.Report
}

// DocumentFetcher acquires one source document. It owns all timeout and
// partial-load policy; a truncated document is returned with
// Snapshot.Truncated set rather than as an error.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (domain.Snapshot, error)
}
