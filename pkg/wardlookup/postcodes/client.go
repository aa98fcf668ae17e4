package postcodes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
)

// Service defaults.
const (
	DefaultBaseURL       = "https://api.postcodes.io"
	DefaultUserAgent     = "CouncilWards-Lookup/1.0"
	DefaultDelay         = 100 * time.Millisecond
	DefaultSingleTimeout = 10 * time.Second
	DefaultBatchTimeout  = 30 * time.Second
	// MaxBatchSize is the most codes the bulk endpoint accepts per call.
	MaxBatchSize = 100
)

// ErrNotFound reports a 404 from the single lookup endpoint.
var ErrNotFound = errors.New("postcode not found")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Stats counts remote calls issued by a Client.
type Stats struct {
	BatchCalls  int
	SingleCalls int
	// Fallbacks is the number of batches resolved through single lookups.
	Fallbacks int
}

// Client performs postcode lookups against postcodes.io.
// It is not safe for concurrent use.
type Client struct {
	baseURL       string
	userAgent     string
	batchSize     int
	delay         time.Duration
	singleTimeout time.Duration
	batchTimeout  time.Duration
	httpClient    *http.Client
	sleep         SleepFunc
	logger        *slog.Logger
	stats         Stats
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at another deployment of the service.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) { c.userAgent = userAgent }
}

// WithBatchSize sets the number of codes sent per bulk call.
func WithBatchSize(size int) Option {
	return func(c *Client) { c.batchSize = size }
}

// WithDelay sets the pause between consecutive remote calls.
func WithDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithTimeouts sets the per-request timeouts for single and batch calls.
func WithTimeouts(single, batch time.Duration) Option {
	return func(c *Client) {
		c.singleTimeout = single
		c.batchTimeout = batch
	}
}

// WithSleep replaces the function used to wait between calls.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithLogger sets the logger used for warnings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a postcodes.io client.
func New(opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:       DefaultBaseURL,
		userAgent:     DefaultUserAgent,
		batchSize:     MaxBatchSize,
		delay:         DefaultDelay,
		singleTimeout: DefaultSingleTimeout,
		batchTimeout:  DefaultBatchTimeout,
		httpClient:    &http.Client{},
		sleep:         SleepWithContext,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}

	client.baseURL = strings.TrimRight(strings.TrimSpace(client.baseURL), "/")
	if client.baseURL == "" {
		return nil, errors.New("postcodes base url required")
	}
	if client.batchSize < 1 || client.batchSize > MaxBatchSize {
		return nil, fmt.Errorf("batch size must be between 1 and %d, got %d", MaxBatchSize, client.batchSize)
	}
	if client.delay < 0 {
		return nil, fmt.Errorf("delay must not be negative, got %v", client.delay)
	}
	if client.singleTimeout <= 0 || client.batchTimeout <= 0 {
		return nil, errors.New("request timeouts must be positive")
	}
	client.logger = logging.NewComponentLogger(client.logger, "postcodes")
	return client, nil
}

// Stats returns the calls issued so far.
func (c *Client) Stats() Stats {
	return c.stats
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
