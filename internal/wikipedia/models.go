// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package wikipedia

// Response is the top-level document returned by the MediaWiki action=query API.
type Response struct {
	// Continue holds the parameters to send with the next request when a result is split
	Continue map[string]any `json:"continue,omitempty"`
	Query    Query          `json:"query"`
	Error    *APIError      `json:"error,omitempty"`
}

// Query contains either the pages of a prop query or the hits of a list=search query.
type Query struct {
	// Pages is keyed by page ID, missing pages use negative IDs
	Pages  map[string]Page `json:"pages,omitempty"`
	Search []SearchHit     `json:"search,omitempty"`
}

type Page struct {
	PageID  int     `json:"pageid"`
	NS      int     `json:"ns"`
	Title   string  `json:"title"`
	Missing *string `json:"missing,omitempty"`
	// Links is nil when the page has no outbound links in this batch
	Links []Link `json:"links,omitempty"`
}

type Link struct {
	NS    int    `json:"ns"`
	Title string `json:"title"`
}

type SearchHit struct {
	NS     int    `json:"ns"`
	Title  string `json:"title"`
	PageID int    `json:"pageid"`
}

// APIError is the error object MediaWiki returns with a 200 status code.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return "wikipedia API error " + e.Code + ": " + e.Info
}

// IsMissing reports whether the API flagged the page as non-existent.
func (p Page) IsMissing() bool {
	return p.Missing != nil || p.PageID < 0
}
