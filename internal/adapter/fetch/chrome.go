package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"github.com/hive-corporation/statuswatch/internal/core/domain"
)

// ChromeFetcher renders pages in headless Chrome before capturing the
// DOM. Status portals that build their incident list client-side need
// this; plain GET returns an empty shell for them.
type ChromeFetcher struct {
	loadTimeout time.Duration
	settle      time.Duration
}

func NewChromeFetcher(loadTimeout time.Duration) *ChromeFetcher {
	if loadTimeout <= 0 {
		loadTimeout = 40 * time.Second
	}
	return &ChromeFetcher{
		loadTimeout: loadTimeout,
		settle:      2 * time.Second,
	}
}

// Fetch navigates to the URL and returns the rendered DOM. If the page
// never finishes loading inside the timeout, whatever has rendered so
// far is returned with Truncated set, so adapters can still extract
// from a partial document.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (domain.Snapshot, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	truncated := false

	loadCtx, cancelLoad := context.WithTimeout(browserCtx, f.loadTimeout)
	defer cancelLoad()

	err := chromedp.Run(loadCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settle),
	)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return domain.Snapshot{}, fmt.Errorf("rendering %s: %w", url, err)
		}
		// Load timed out but the browser is still alive; grab the
		// partial DOM below.
		truncated = true
	}

	var html string
	captureCtx, cancelCapture := context.WithTimeout(browserCtx, 10*time.Second)
	defer cancelCapture()

	err = chromedp.Run(captureCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		root, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		html, err = dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("capturing DOM of %s: %w", url, err)
	}

	return domain.Snapshot{
		URL:       url,
		Body:      html,
		Truncated: truncated,
		FetchedAt: time.Now().UTC(),
	}, nil
}
