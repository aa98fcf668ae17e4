package postcodes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
)

// LookupSingle resolves one postcode. It returns nil for blank input (without
// a remote call), for unknown postcodes, and for any failure; failures other
// than "not found" are logged as warnings.
func (c *Client) LookupSingle(ctx context.Context, code string) *models.LookupResult {
	normalized := Normalize(code)
	if normalized == "" {
		return nil
	}

	result, err := c.fetchSingle(ctx, normalized)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("postcode lookup failed",
				logging.String("postcode", code),
				logging.Error(err),
			)
		}
		return nil
	}
	return result
}

func (c *Client) fetchSingle(ctx context.Context, normalized string) (*models.LookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.singleTimeout)
	defer cancel()

	endpoint := c.baseURL + "/postcodes/" + url.PathEscape(normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	c.stats.SingleCalls++
	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload singleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	if payload.Status != http.StatusOK || payload.Result == nil {
		return nil, ErrNotFound
	}
	return payload.Result, nil
}
