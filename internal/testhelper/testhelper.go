// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for the package tests.
package testhelper

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strconv"
	"testing"
)

const (
	// TestOnlineAPIURL is a public endpoint that answers with a small JSON document
	TestOnlineAPIURL = "https://nominatim.openstreetmap.org/status?format=json"

	// OnlineTestEnv enables tests that talk to the real APIs when set to a true value
	OnlineTestEnv = "PERFORM_ONLINE_TESTS"
)

// MockRoundTripper is a http.RoundTripper that hands every request to Fn.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

// RoundTrip satisfies the http.RoundTripper interface.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless online tests are enabled.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	val, ok := os.LookupEnv(OnlineTestEnv)
	if !ok {
		t.Skipf("skipping online test, set %s=true to enable", OnlineTestEnv)
	}
	if enabled, err := strconv.ParseBool(val); err != nil || !enabled {
		t.Skipf("skipping online test, set %s=true to enable", OnlineTestEnv)
	}
}

// JSONResponse returns a 200 response with the given JSON body.
func JSONResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// FileResponse returns a 200 response serving the content of the given file.
func FileResponse(t *testing.T, path string) *http.Response {
	t.Helper()
	data, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open JSON response file: %s", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       data,
		Header:     make(http.Header),
	}
}

// RequestRecorder counts and keeps the requests passed through a MockRoundTripper.
type RequestRecorder struct {
	Requests []*http.Request
}

// Record stores the request and returns the number of requests seen so far.
func (r *RequestRecorder) Record(req *http.Request) int {
	r.Requests = append(r.Requests, req)
	return len(r.Requests)
}

// Count returns the number of recorded requests.
func (r *RequestRecorder) Count() int {
	return len(r.Requests)
}
