// Package hypixel fetches the upstream auction listings. Responses are
// decoded as opaque JSON; a page without an auctions key is reported as
// an error so the caller can abort its cycle.
package hypixel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuctionsPage fetches one page of the current-auctions listing.
func (c *Client) AuctionsPage(ctx context.Context, page int) (*AuctionsPage, error) {
	var result AuctionsPage
	if err := c.getJSON(ctx, fmt.Sprintf("%s/skyblock/auctions?page=%d", c.baseURL, page), &result); err != nil {
		return nil, err
	}

	if result.Auctions == nil {
		return nil, fmt.Errorf("page %d: response lacks auctions", page)
	}

	return &result, nil
}

// EndedAuctions fetches the recently-ended listing.
func (c *Client) EndedAuctions(ctx context.Context) (*EndedAuctions, error) {
	var result EndedAuctions
	if err := c.getJSON(ctx, c.baseURL+"/skyblock/auctions_ended", &result); err != nil {
		return nil, err
	}

	if result.Auctions == nil {
		return nil, fmt.Errorf("ended listing: response lacks auctions")
	}

	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequest: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}
