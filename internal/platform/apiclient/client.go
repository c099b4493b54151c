// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the JSON-over-HTTP client for the catalog REST API.

Every page controller reaches the catalog through this package. It owns the
wire concerns so callers only see decoded values or a classified
[apperr.AppError]:

  - 2xx: the body is decoded into the caller's target (if any).
  - non-2xx: the body is parsed as {message, errors} and classified via
    [apperr.Upstream]; an unparseable body yields an empty message.
  - transport failure: [apperr.Unavailable].

The client never retries and sets no deadline of its own; the caller's
context is the only thing that ends a slow request.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to one catalog API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// errorBody is the error envelope returned by the catalog API.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// New builds a client for baseURL. A nil httpClient selects a fresh
// [http.Client] with no timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Get issues a GET and decodes the body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Delete issues a DELETE and discards any body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends in (JSON-encoded, when non-nil) with method to path and decodes a
// successful response into out (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	logger := ctxutil.GetLogger(ctx)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apperr.Internal(fmt.Errorf("apiclient: encode %s %s: %w", method, path, err))
		}
		body = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: build %s %s: %w", method, path, err))
	}
	request.Header.Set("Accept", "application/json")
	if in != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	startTime := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "catalog_request_failed",
			slog.String("api_method", method),
			slog.String("api_path", path),
			slog.Any("error", err),
		)
		return apperr.Unavailable(fmt.Errorf("apiclient: %s %s: %w", method, path, err))
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("apiclient: read %s %s: %w", method, path, err))
	}

	logger.DebugContext(ctx, "catalog_request",
		slog.String("api_method", method),
		slog.String("api_path", path),
		slog.Int("api_status", response.StatusCode),
		slog.Int64("api_latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return classify(response.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	// A caller that expects a result never accepts an empty 2xx body.
	if len(bytes.TrimSpace(raw)) == 0 {
		return malformed(fmt.Errorf("apiclient: %s %s: empty response body", method, path))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformed(fmt.Errorf("apiclient: decode %s %s: %w", method, path, err))
	}
	return nil
}

// Ping reports whether the catalog API answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("apiclient: ping: %w", err)
	}
	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("apiclient: ping: %w", err)
	}
	_ = response.Body.Close()
	return nil
}

// malformed reports a 2xx response the client cannot use.
func malformed(cause error) *apperr.AppError {
	appErr := apperr.Upstream(http.StatusBadGateway, "", nil)
	appErr.Cause = cause
	return appErr
}

// classify turns an error response into an [apperr.AppError].
func classify(status int, raw []byte) *apperr.AppError {
	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperr.Upstream(status, "", nil)
	}

	var details []apperr.FieldError
	if len(envelope.Errors) > 0 {
		fields := make([]string, 0, len(envelope.Errors))
		for field := range envelope.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		details = make([]apperr.FieldError, 0, len(fields))
		for _, field := range fields {
			details = append(details, apperr.FieldError{Field: field, Message: envelope.Errors[field]})
		}
	}

	return apperr.Upstream(status, envelope.Message, details)
}
