package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

const defaultUserAgent = "statuswatch/1.0 (+https://github.com/hive-corporation/statuswatch)"

// HTTPFetcher retrieves documents with a plain HTTP GET. Suitable for
// JSON endpoints and pages that render without a browser.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: defaultUserAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Snapshot{}, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("reading body of %s: %w", url, err)
	}

	return domain.Snapshot{
		URL:       url,
		Body:      string(body),
		FetchedAt: time.Now().UTC(),
	}, nil
}
