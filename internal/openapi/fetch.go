package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/toolgate/toolgate/internal/common"
)

// DefaultFetchTimeout bounds the spec download when no timeout is configured.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher downloads specification documents. It performs at most one
// outbound call per Fetch and never writes.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
	logger   *common.Logger
}

// NewFetcher creates a fetcher with the given request timeout and
// response size cap.
func NewFetcher(timeout time.Duration, maxBytes int64, logger *common.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Fetch retrieves the raw specification text from the given location.
// Failures are classified as timeout, HTTP status, or transport errors,
// each carrying the attempted location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	f.logger.Info().Str("url", location).Msg("fetching OpenAPI spec")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &FetchError{Kind: FetchTransport, URL: location, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classifyFetchErr(location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: FetchStatus, URL: location, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, classifyFetchErr(location, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &FetchError{
			Kind: FetchTransport,
			URL:  location,
			Err:  fmt.Errorf("spec exceeds maximum size of %d bytes", f.maxBytes),
		}
	}

	f.logger.Debug().Str("url", location).Int("bytes", len(body)).Msg("spec fetched")
	return body, nil
}

// classifyFetchErr maps a client error onto the fetch taxonomy.
func classifyFetchErr(location string, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FetchTimeout, URL: location, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, URL: location, Err: err}
	}
	return &FetchError{Kind: FetchTransport, URL: location, Err: err}
}
