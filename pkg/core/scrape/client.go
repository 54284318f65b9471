// Package scrape downloads index files and raw filings from SEC EDGAR.
//
// EDGAR's fair-access policy requires a descriptive User-Agent and a modest
// request rate; the client enforces both so batch downloads cannot trip the
// SEC's throttling.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/md-experiments/scraper-edgar/pkg/core/corpus"
)

const (
	// BaseURL is the EDGAR archive root.
	BaseURL = "https://www.sec.gov/Archives"
	// IndexURL is the quarterly full-index root.
	IndexURL = BaseURL + "/edgar/full-index"

	// requestGap spaces successive requests per SEC fair-access guidance.
	requestGap = 2 * time.Second
)

// Client fetches documents from SEC EDGAR with rate limiting.
type Client struct {
	httpClient *http.Client
	userAgent  string
	lastReq    time.Time
}

// NewClient creates an EDGAR client. userAgent must identify the caller in
// the form "ORG_NAME MAIL_ADDRESS" per SEC guidelines.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		userAgent:  userAgent,
	}
}

// fetch performs one rate-limited GET and returns the body with best-effort
// decoding applied at this I/O boundary.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	if wait := requestGap - time.Since(c.lastReq); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.lastReq = time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: EDGAR returned status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return corpus.DecodeBestEffort(data), nil
}
