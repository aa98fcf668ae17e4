package postcodes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/models"
)

// ProgressFunc is called before each batch with the 1-based batch number,
// the total number of batches and the number of codes in the batch.
type ProgressFunc func(batch, total, size int)

// LookupAll resolves every code, returning one entry per code in input order.
// Codes are sent in contiguous batches with the configured delay between
// batches.
func (c *Client) LookupAll(ctx context.Context, codes []string, progress ProgressFunc) []*models.LookupResult {
	total := len(codes)
	results := make([]*models.LookupResult, 0, total)
	totalBatches := (total + c.batchSize - 1) / c.batchSize

	for start := 0; start < total; start += c.batchSize {
		end := min(start+c.batchSize, total)
		if progress != nil {
			progress(start/c.batchSize+1, totalBatches, end-start)
		}

		// Chunks never exceed the batch size, so LookupBatch cannot fail here.
		batch, _ := c.LookupBatch(ctx, codes[start:end])
		results = append(results, batch...)

		if end < total {
			_ = c.sleep(ctx, c.delay)
		}
	}
	return results
}

// LookupBatch resolves up to BatchSize codes with one bulk call. The returned
// slice is aligned with codes: codes that normalize to the same value share a
// result, and blank codes resolve to nil without being sent. If the bulk call
// fails for any reason each code is looked up individually instead.
func (c *Client) LookupBatch(ctx context.Context, codes []string) ([]*models.LookupResult, error) {
	if len(codes) > c.batchSize {
		return nil, fmt.Errorf("batch of %d postcodes exceeds maximum of %d", len(codes), c.batchSize)
	}

	results := make([]*models.LookupResult, len(codes))
	normalized := make([]string, len(codes))
	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for i, code := range codes {
		key := Normalize(code)
		normalized[i] = key
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	if len(unique) == 0 {
		return results, nil
	}

	found, err := c.fetchBatch(ctx, unique)
	if err != nil {
		c.logger.Warn("batch lookup failed; falling back to individual lookups",
			logging.Int("postcodes", len(codes)),
			logging.Error(err),
		)
		c.stats.Fallbacks++
		for i, code := range codes {
			if normalized[i] == "" {
				continue
			}
			_ = c.sleep(ctx, c.delay)
			results[i] = c.LookupSingle(ctx, code)
		}
		return results, nil
	}

	for i, key := range normalized {
		if key != "" {
			results[i] = found[key]
		}
	}
	return results, nil
}

func (c *Client) fetchBatch(ctx context.Context, normalized []string) (map[string]*models.LookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.batchTimeout)
	defer cancel()

	body, err := json.Marshal(batchRequest{Postcodes: normalized})
	if err != nil {
		return nil, fmt.Errorf("encode batch request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/postcodes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	c.stats.BatchCalls++
	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute batch request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("batch lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	if payload.Status != http.StatusOK {
		return nil, fmt.Errorf("batch lookup reported status %d", payload.Status)
	}

	found := make(map[string]*models.LookupResult, len(payload.Result))
	for _, item := range payload.Result {
		if item.Result == nil {
			continue
		}
		found[strings.ToUpper(item.Query)] = item.Result
	}
	return found, nil
}
