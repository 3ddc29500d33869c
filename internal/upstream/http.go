package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

// Fetch issues a GET for path with params and decodes a JSON object.
//
// Transport failures (connection errors, timeouts) are retried with a fixed
// delay; HTTP statuses are never retried. With allowMissing a 404 yields an
// empty object instead of an error. Terminal failures are *errors.UpstreamError.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values, allowMissing bool) (map[string]any, error) {
	if !c.HasCredential() {
		return nil, apperrors.NewCredentialMissingError(c.name)
	}

	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var payload map[string]any
	err := retry.Do(
		func() error {
			data, err := c.doJSONRequest(ctx, endpoint, path, allowMissing)
			if err != nil {
				return err
			}
			payload = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.retryAttempts)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying catalog request", "provider", c.name, "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if !apperrors.IsUpstreamError(err) {
			err = apperrors.NewUpstreamTransportError(path, err)
		}
		return nil, err
	}
	return payload, nil
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint, path string, allowMissing bool) (map[string]any, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.NewUpstreamTransportError(path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError(path, err)
	}
	req.Header.Set("Accept", "application/json")
	c.credential.Apply(req)

	slog.Debug("Fetching catalog data", "provider", c.name, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError(path, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && allowMissing {
		return map[string]any{}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Debug("Catalog API error response", "provider", c.name, "path", path,
			"status", resp.StatusCode, "body", strings.TrimSpace(string(body)))
		return nil, apperrors.NewUpstreamStatusError(resp.StatusCode, path)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, apperrors.NewUpstreamTransportError(path, fmt.Errorf("decode response: %w", err))
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// isRetryable reports whether err is a transient transport failure.
func isRetryable(err error) bool {
	var upstreamErr *apperrors.UpstreamError
	if !errors.As(err, &upstreamErr) || !upstreamErr.Transport() || upstreamErr.Err == nil {
		return false
	}
	cause := upstreamErr.Err
	if errors.Is(cause, context.Canceled) {
		return false
	}

	var timeout interface{ Timeout() bool }
	if errors.As(cause, &timeout) && timeout.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(cause, &opErr) {
		return true
	}
	if errors.Is(cause, io.ErrUnexpectedEOF) {
		return true
	}
	return strings.Contains(cause.Error(), "connection")
}

// redact strips the query string from URL errors so credentials passed as
// query parameters never reach logs or API responses.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
		}
	}
	return err
}
