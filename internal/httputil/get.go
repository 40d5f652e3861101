// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r Response) OK() bool {
	return IsSuccess(r.StatusCode)
}

// IsSuccess reports whether status is in the 2xx range.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// Get issues a single GET request for url and reads the whole body.
//
// Non-2xx statuses are not errors here: the caller decides what a failed
// status means for its stage. Transport failures (connection refused, client
// timeout, context cancellation) and body read failures are returned as
// errors. Get never retries.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (Response, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("reading response body: %w", err)
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
