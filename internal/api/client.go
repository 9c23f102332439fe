package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mobil-koeln/mvg-tui/internal/cache"
	"github.com/mobil-koeln/mvg-tui/internal/logging"
	"github.com/mobil-koeln/mvg-tui/internal/models"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultDepartureLimit = 40
	defaultSearchLimit    = 10

	stationsTTL = 24 * time.Hour
	searchTTL   = 10 * time.Minute

	// maxErrorBody bounds how much of an error response is read for its message
	maxErrorBody = 4 << 10
)

// DefaultUserAgent identifies the client to the API
const DefaultUserAgent = "mvg-tui (+https://github.com/mobil-koeln/mvg-tui)"

// Cache stores response bodies keyed by request URL
type Cache interface {
	Get(key string) ([]byte, bool)
	SetWithTTL(key string, value []byte, ttl time.Duration) error
}

// Client is the API client for the MVG departure and station endpoints
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	timezone       *time.Location
	cache          Cache
	logger         *zap.Logger
	departureLimit int
	searchLimit    int
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at another API root
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithDepartureLimit sets how many departures are requested per station
func WithDepartureLimit(n int) ClientOption {
	return func(c *Client) {
		c.departureLimit = n
	}
}

// WithLogger sets the logger for request tracing
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithCache enables caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables caching with the default file cache
func WithDefaultCache() ClientOption {
	return func(c *Client) {
		fc, err := cache.NewFileCache(cache.DefaultCacheDir())
		if err != nil {
			c.logger.Warn("File cache disabled", zap.Error(err))
			return
		}
		if removed, err := fc.Cleanup(); err != nil {
			c.logger.Warn("Cache cleanup failed", zap.String("dir", fc.Dir()), zap.Error(err))
		} else if removed > 0 {
			c.logger.Debug("Removed stale cache entries", zap.Int("count", removed))
		}
		c.cache = fc
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	tz, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	c := &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		baseURL:        BaseURL,
		userAgent:      DefaultUserAgent,
		timezone:       tz,
		logger:         logging.GetLogger(),
		departureLimit: defaultDepartureLimit,
		searchLimit:    defaultSearchLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.departureLimit <= 0 {
		return nil, ErrInvalidValue("departureLimit", c.departureLimit)
	}
	if _, err := url.Parse(c.baseURL); err != nil || c.baseURL == "" {
		return nil, ErrInvalidFormat("baseURL", "absolute URL")
	}

	return c, nil
}

// Timezone returns the client's timezone
func (c *Client) Timezone() *time.Location {
	return c.timezone
}

// ListStations fetches the full station list. The list changes rarely and
// is cached for a day.
func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.doRequest(ctx, c.baseURL+EndpointStations, stationsTTL)
	if err != nil {
		return nil, err
	}

	var resp []models.StationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("station list: %w", ErrNoResults)
	}

	stations := make([]models.Station, 0, len(resp))
	for _, entry := range resp {
		if entry.ID == "" {
			continue
		}
		stations = append(stations, *entry.ToStation())
	}

	return stations, nil
}

// ListDepartures fetches the next departures at a station. Departures are
// never cached.
func (c *Client) ListDepartures(ctx context.Context, stationID string) ([]models.Departure, error) {
	if err := validateStationID(stationID); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("globalId", stationID)
	params.Set("limit", strconv.Itoa(c.departureLimit))
	params.Set("offsetInMinutes", "0")

	body, err := c.doRequest(ctx, c.baseURL+EndpointDepartures+"?"+params.Encode(), 0)
	if err != nil {
		return nil, err
	}

	var resp []models.DepartureResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse departures response: %w", err)
	}

	departures := make([]models.Departure, 0, len(resp))
	for _, entry := range resp {
		departures = append(departures, *entry.ToDeparture(c.timezone))
	}

	return departures, nil
}

// SearchStations searches stations by name. Addresses and points of
// interest are dropped, as are duplicate stations.
func (c *Client) SearchStations(ctx context.Context, query string) ([]models.Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingField("query")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("locationTypes", "STATION")

	body, err := c.doRequest(ctx, c.baseURL+EndpointLocations+"?"+params.Encode(), searchTTL)
	if err != nil {
		return nil, err
	}

	var resp []models.LocationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse locations response: %w", err)
	}

	seen := make(map[string]bool, len(resp))
	stations := make([]models.Station, 0, len(resp))
	for _, entry := range resp {
		if !entry.IsStation() || seen[entry.GlobalID] {
			continue
		}
		seen[entry.GlobalID] = true
		stations = append(stations, *entry.ToStation())
		if len(stations) == c.searchLimit {
			break
		}
	}

	return stations, nil
}

// validateStationID checks for a global id such as "de:09162:2"
func validateStationID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingField("stationID")
	}
	if strings.Count(id, ":") < 2 {
		return ErrInvalidFormat("stationID", "global id like de:09162:2")
	}
	return nil
}

// doRequest performs an HTTP GET request. Successful responses are cached
// for ttl when a cache is configured and ttl is positive.
func (c *Client) doRequest(ctx context.Context, reqURL string, ttl time.Duration) ([]byte, error) {
	if c.cache != nil && ttl > 0 {
		if data, ok := c.cache.Get(reqURL); ok {
			c.logger.Debug("Cache hit", zap.String("url", reqURL))
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		} else {
			err = fmt.Errorf("request failed: %w", err)
		}
		c.logRequest(reqURL, 0, start, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := c.errorFromResponse(resp, reqURL)
		c.logRequest(reqURL, resp.StatusCode, start, apiErr)
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		c.logRequest(reqURL, resp.StatusCode, start, err)
		return nil, err
	}
	c.logRequest(reqURL, resp.StatusCode, start, nil)

	if c.cache != nil && ttl > 0 {
		if err := c.cache.SetWithTTL(reqURL, body, ttl); err != nil {
			c.logger.Warn("Cache write failed", zap.String("url", reqURL), zap.Error(err))
		}
	}

	return body, nil
}

// errorFromResponse builds an APIError, keeping the server's message when
// the error body carries one
func (c *Client) errorFromResponse(resp *http.Response, reqURL string) *APIError {
	endpoint := extractEndpoint(reqURL)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return NewAPIErrorWithMessage(resp.StatusCode, resp.Status, endpoint, payload.Message)
	}
	return NewAPIError(resp.StatusCode, resp.Status, endpoint)
}

func (c *Client) logRequest(reqURL string, status int, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("url", reqURL),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		c.logger.Warn("HTTP request failed", append(fields, zap.Error(err))...)
		return
	}
	c.logger.Debug("HTTP request", fields...)
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
