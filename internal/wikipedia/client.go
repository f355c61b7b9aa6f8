// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package wikipedia implements the parts of the MediaWiki query API needed to read the outbound
// links of a page and to run a full-text search.
package wikipedia

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	httpclient "github.com/wneessen/geolookup/internal/http"
	"github.com/wneessen/geolookup/internal/logger"
)

const (
	APIEndpoint = "https://en.wikipedia.org/w/api.php"

	// maxContinue bounds the number of follow-up requests for a single page
	maxContinue = 50
)

type Client struct {
	http           *httpclient.Client
	logger         *logger.Logger
	endpoint       string
	followContinue bool
}

// New returns a Wikipedia client for the given api.php endpoint. An empty endpoint selects the
// English Wikipedia. With followContinue set, Links keeps requesting until all batches of a page
// are read, otherwise it stops after the first response.
func New(client *httpclient.Client, log *logger.Logger, endpoint string, followContinue bool) *Client {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	return &Client{
		http:           client,
		logger:         log,
		endpoint:       endpoint,
		followContinue: followContinue,
	}
}

// Links returns the titles of the outbound links of the page with the given title, in the
// order the API returns them. A missing page and a page without links both yield an empty list.
func (c *Client) Links(ctx context.Context, title string) ([]string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("format", "json")
	query.Set("prop", "links")
	query.Set("titles", title)
	query.Set("pllimit", "max")

	var links []string
	for i := 0; i < maxContinue; i++ {
		resp, err := c.query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch links for %q: %w", title, err)
		}
		for _, page := range resp.Query.Pages {
			if page.IsMissing() {
				c.logger.Debug("page does not exist", slog.String("title", page.Title))
			}
		}
		links = append(links, pageLinks(resp.Query.Pages)...)

		if !c.followContinue || len(resp.Continue) == 0 {
			return links, nil
		}
		for k, v := range resp.Continue {
			query.Set(k, fmt.Sprint(v))
		}
		c.logger.Debug("following link continuation", slog.String("title", title),
			slog.Int("links", len(links)))
	}
	c.logger.Warn("link continuation limit reached", slog.String("title", title), slog.Int("requests", maxContinue))
	return links, nil
}

// Search runs a full-text search for term and returns the title of the top hit. The boolean
// is false when the search had no hits.
func (c *Client) Search(ctx context.Context, term string) (string, bool, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("format", "json")
	query.Set("list", "search")
	query.Set("srsearch", term)

	resp, err := c.query(ctx, query)
	if err != nil {
		return "", false, fmt.Errorf("failed to search for %q: %w", term, err)
	}
	if len(resp.Query.Search) == 0 {
		return "", false, nil
	}
	return resp.Query.Search[0].Title, true, nil
}

func (c *Client) query(ctx context.Context, query url.Values) (*Response, error) {
	resp := new(Response)
	code, err := c.http.Get(ctx, c.endpoint, resp, query, nil)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from Wikipedia API: %d", code)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp, nil
}

// pageLinks returns the links of the first page that has any. Pages are visited in key order
// so that the result does not depend on map iteration.
func pageLinks(pages map[string]Page) []string {
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		page := pages[k]
		if len(page.Links) == 0 {
			continue
		}
		titles := make([]string, 0, len(page.Links))
		for _, link := range page.Links {
			titles = append(titles, link.Title)
		}
		return titles
	}
	return nil
}
