// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsBodyAndStatus(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("hello"))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "pubmed-fetcher/test")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, "hello", string(resp.Body))
	assert.Equal(t, "pubmed-fetcher/test", gotUA)
}

func TestGet_Non2xxIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("busy"))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, "busy", string(resp.Body))
}

func TestGet_ClientTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	client := ts.Client()
	client.Timeout = 50 * time.Millisecond

	_, err := Get(context.Background(), client, ts.URL, "")
	assert.Error(t, err)
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_NilClientUsesDefault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), nil, ts.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
}

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusMultipleChoices, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := IsSuccess(tt.status); got != tt.want {
			t.Errorf("IsSuccess(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
