package scrapeservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/repository"
	"github.com/user/vidmeta/pkg/metrics"
)

const (
	userAgent    = "vidmeta/1.0"
	maxBodyBytes = 4 << 20
)

// Client talks to the external scrape service. It implements
// repository.MetadataRepository.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	logger   *zap.Logger
	maxBody  int64
}

// NewClient creates a client for the scrape endpoint. A zero timeout means
// requests wait until the service answers or ctx is done.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("parsing scrape endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scrape endpoint %q must be an http(s) URL", endpoint)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: u,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		maxBody:  maxBodyBytes,
	}, nil
}

// Endpoint returns the configured scrape URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

type successBody struct {
	VideoData entity.ScrapeResult `json:"videoData"`
}

type errorBody struct {
	Error any `json:"error"`
}

// FetchMetadata sends GET <endpoint>?url=...&platform=... and returns the
// videoData object of the response.
func (c *Client) FetchMetadata(ctx context.Context, req entity.SubmissionRequest) (entity.ScrapeResult, error) {
	u := *c.endpoint
	q := u.Query()
	q.Set("url", req.URL)
	q.Set("platform", req.Platform.String())
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &repository.NetworkError{Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	platform := req.Platform.String()
	start := time.Now()
	metrics.ScrapeRequestsInFlight.Inc()
	defer metrics.ScrapeRequestsInFlight.Dec()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ObserveScrape(platform, "network_error", time.Since(start).Seconds())
		c.logger.Warn("scrape request failed", zap.String("platform", platform), zap.Error(err))
		return nil, &repository.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		metrics.ObserveScrape(platform, "network_error", time.Since(start).Seconds())
		return nil, &repository.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		metrics.ObserveScrape(platform, "service_error", time.Since(start).Seconds())
		c.logger.Warn("scrape service response too large",
			zap.String("platform", platform),
			zap.Int("status", resp.StatusCode),
			zap.Int64("limit_bytes", c.maxBody),
		)
		return nil, &repository.ServiceError{StatusCode: resp.StatusCode, Message: repository.FallbackMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveScrape(platform, "service_error", time.Since(start).Seconds())
		msg := errorMessage(body)
		c.logger.Warn("scrape service returned an error",
			zap.String("platform", platform),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg),
		)
		return nil, &repository.ServiceError{StatusCode: resp.StatusCode, Message: msg}
	}

	var out successBody
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		metrics.ObserveScrape(platform, "service_error", time.Since(start).Seconds())
		c.logger.Warn("scrape service returned an unreadable body",
			zap.String("platform", platform),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, &repository.ServiceError{StatusCode: resp.StatusCode, Message: repository.FallbackMessage}
	}
	if out.VideoData == nil {
		out.VideoData = entity.ScrapeResult{}
	}

	metrics.ObserveScrape(platform, "success", time.Since(start).Seconds())
	c.logger.Debug("scrape request succeeded",
		zap.String("platform", platform),
		zap.Duration("took", time.Since(start)),
	)
	return out.VideoData, nil
}

// errorMessage extracts the service's "error" text, falling back to the
// generic message when the body carries none.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return repository.FallbackMessage
	}
	if s, ok := eb.Error.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return repository.FallbackMessage
}
