// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package wikipedia

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"slices"
	"strings"
	"testing"

	"github.com/wneessen/geolookup/internal/http"
	"github.com/wneessen/geolookup/internal/logger"
	"github.com/wneessen/geolookup/internal/testhelper"
)

const (
	parisTitle       = "List of tourist attractions in Paris"
	linksFile        = "../../testdata/wikipedia_links_paris.json"
	missingFile      = "../../testdata/wikipedia_missing.json"
	noLinksFile      = "../../testdata/wikipedia_nolinks.json"
	searchFile       = "../../testdata/wikipedia_search.json"
	searchEmptyFile  = "../../testdata/wikipedia_search_empty.json"
	continueFile1    = "../../testdata/wikipedia_links_continue_1.json"
	continueFile2    = "../../testdata/wikipedia_links_continue_2.json"
	apiErrorFile     = "../../testdata/wikipedia_error.json"
	testUserAgent    = "location-coord-finder/1.0"
	customAPIAddress = "https://de.wikipedia.org/w/api.php"
)

func TestNew(t *testing.T) {
	t.Run("empty endpoint selects the english wikipedia", func(t *testing.T) {
		client := New(http.New(testLogger()), testLogger(), "", false)
		if client.endpoint != APIEndpoint {
			t.Errorf("expected endpoint to be %q, got %q", APIEndpoint, client.endpoint)
		}
	})
	t.Run("custom endpoint is kept", func(t *testing.T) {
		client := New(http.New(testLogger()), testLogger(), customAPIAddress, true)
		if client.endpoint != customAPIAddress {
			t.Errorf("expected endpoint to be %q, got %q", customAPIAddress, client.endpoint)
		}
		if !client.followContinue {
			t.Error("expected follow continue to be enabled")
		}
	})
}

func TestClient_Links(t *testing.T) {
	t.Run("links are returned in API order without deduplication", func(t *testing.T) {
		var gotReq *stdhttp.Request
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			return testhelper.FileResponse(t, linksFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		links, err := client.Links(t.Context(), parisTitle)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"Eiffel Tower", "Louvre", "Notre-Dame de Paris", "Arc de Triomphe", "Louvre"}
		if !slices.Equal(links, want) {
			t.Errorf("expected links to be %v, got %v", want, links)
		}

		query := gotReq.URL.Query()
		expect := map[string]string{
			"action":  "query",
			"format":  "json",
			"prop":    "links",
			"titles":  parisTitle,
			"pllimit": "max",
		}
		for k, v := range expect {
			if query.Get(k) != v {
				t.Errorf("expected query parameter %s to be %q, got %q", k, v, query.Get(k))
			}
		}
		if gotReq.Header.Get("User-Agent") != testUserAgent {
			t.Errorf("expected user agent %q, got %q", testUserAgent, gotReq.Header.Get("User-Agent"))
		}
	})
	t.Run("missing page yields an empty list", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.FileResponse(t, missingFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		links, err := client.Links(t.Context(), "List of tourist attractions in Atlantis")
		if err != nil {
			t.Fatal(err)
		}
		if len(links) != 0 {
			t.Errorf("expected no links, got %v", links)
		}
	})
	t.Run("existing page without links yields an empty list", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.FileResponse(t, noLinksFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		links, err := client.Links(t.Context(), "Tourist attractions in Atlantis")
		if err != nil {
			t.Fatal(err)
		}
		if len(links) != 0 {
			t.Errorf("expected no links, got %v", links)
		}
	})
	t.Run("continuation is ignored unless enabled", func(t *testing.T) {
		rec := &testhelper.RequestRecorder{}
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			rec.Record(req)
			return testhelper.FileResponse(t, continueFile1), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		links, err := client.Links(t.Context(), parisTitle)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Count() != 1 {
			t.Errorf("expected exactly one request, got %d", rec.Count())
		}
		if len(links) != 2 {
			t.Errorf("expected the first batch of 2 links, got %v", links)
		}
	})
	t.Run("continuation is followed when enabled", func(t *testing.T) {
		rec := &testhelper.RequestRecorder{}
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if rec.Record(req) == 1 {
				return testhelper.FileResponse(t, continueFile1), nil
			}
			return testhelper.FileResponse(t, continueFile2), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, true)
		links, err := client.Links(t.Context(), parisTitle)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Count() != 2 {
			t.Fatalf("expected two requests, got %d", rec.Count())
		}
		want := []string{"Eiffel Tower", "Arc de Triomphe", "Louvre", "Sacré-Cœur, Paris"}
		if !slices.Equal(links, want) {
			t.Errorf("expected links to be %v, got %v", want, links)
		}
		second := rec.Requests[1].URL.Query()
		if second.Get("plcontinue") != "4731539|0|Louvre" {
			t.Errorf("expected plcontinue to be sent, got %q", second.Get("plcontinue"))
		}
		if second.Get("continue") != "||" {
			t.Errorf("expected continue to be sent, got %q", second.Get("continue"))
		}
	})
	t.Run("endless continuation is bounded", func(t *testing.T) {
		rec := &testhelper.RequestRecorder{}
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			rec.Record(req)
			return testhelper.FileResponse(t, continueFile1), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, true)
		if _, err := client.Links(t.Context(), parisTitle); err != nil {
			t.Fatal(err)
		}
		if rec.Count() != maxContinue {
			t.Errorf("expected %d requests, got %d", maxContinue, rec.Count())
		}
	})
	t.Run("API error document fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.FileResponse(t, apiErrorFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		_, err := client.Links(t.Context(), parisTitle)
		if err == nil {
			t.Fatal("expected API request to fail")
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected error to be an APIError, got %T", err)
		}
		if apiErr.Code != "badvalue" {
			t.Errorf("expected error code badvalue, got %q", apiErr.Code)
		}
	})
	t.Run("unexpected status code fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			resp := testhelper.JSONResponse(`{}`)
			resp.StatusCode = stdhttp.StatusTooManyRequests
			return resp, nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		_, err := client.Links(t.Context(), parisTitle)
		if err == nil {
			t.Fatal("expected API request to fail")
		}
		if !strings.Contains(err.Error(), "unexpected status code") {
			t.Errorf("expected error to contain 'unexpected status code', got %s", err)
		}
	})
	t.Run("transport error fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		if _, err := client.Links(t.Context(), parisTitle); err == nil {
			t.Fatal("expected API request to fail")
		}
	})
}

func TestClient_Search(t *testing.T) {
	t.Run("search returns the top hit", func(t *testing.T) {
		var gotReq *stdhttp.Request
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotReq = req
			return testhelper.FileResponse(t, searchFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		title, found, err := client.Search(t.Context(), "Tourist attractions in Atlantis")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("expected search to find a title")
		}
		if title != "Tourism in Atlantis" {
			t.Errorf("expected top hit title, got %q", title)
		}
		query := gotReq.URL.Query()
		if query.Get("list") != "search" {
			t.Errorf("expected list=search, got %q", query.Get("list"))
		}
		if query.Get("srsearch") != "Tourist attractions in Atlantis" {
			t.Errorf("expected srsearch term, got %q", query.Get("srsearch"))
		}
		if query.Has("prop") {
			t.Error("expected no prop parameter for a search")
		}
	})
	t.Run("search without hits is not found", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.FileResponse(t, searchEmptyFile), nil
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		title, found, err := client.Search(t.Context(), "Tourist attractions in Nowhere")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("expected search to find nothing")
		}
		if title != "" {
			t.Errorf("expected empty title, got %q", title)
		}
	})
	t.Run("search fails on transport error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := testClientWithRoundtripFunc(t, rtFn, false)
		_, _, err := client.Search(t.Context(), "Tourist attractions in Paris")
		if err == nil {
			t.Fatal("expected API request to fail")
		}
		if !strings.Contains(err.Error(), "failed to search") {
			t.Errorf("expected error to contain 'failed to search', got %s", err)
		}
	})
}

func TestClient_integration(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	client := New(http.New(testLogger(), http.WithUserAgent(testUserAgent)), testLogger(), "", false)
	t.Run("links of a known list page", func(t *testing.T) {
		links, err := client.Links(t.Context(), parisTitle)
		if err != nil {
			t.Fatal(err)
		}
		if len(links) == 0 {
			t.Error("expected links to be returned")
		}
	})
	t.Run("search finds a title", func(t *testing.T) {
		_, found, err := client.Search(t.Context(), "Tourist attractions in Paris")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Error("expected search to find a title")
		}
	})
}

func TestPageLinks(t *testing.T) {
	t.Run("first page with links wins in key order", func(t *testing.T) {
		pages := map[string]Page{
			"-1": {Title: "Missing"},
			"20": {Title: "Second", Links: []Link{{Title: "B"}}},
			"10": {Title: "First", Links: []Link{{Title: "A"}}},
		}
		got := pageLinks(pages)
		if !slices.Equal(got, []string{"A"}) {
			t.Errorf("expected links of the first page, got %v", got)
		}
	})
	t.Run("no pages yields nil", func(t *testing.T) {
		if got := pageLinks(nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelDebug, io.Discard)
}

func testClientWithRoundtripFunc(_ *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error),
	followContinue bool,
) *Client {
	testHttpClient := http.New(testLogger(), http.WithUserAgent(testUserAgent))
	testHttpClient.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(testHttpClient, testLogger(), "", followContinue)
}
