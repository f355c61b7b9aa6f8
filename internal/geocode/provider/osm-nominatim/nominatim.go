// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wneessen/geolookup/internal/geocode"
	httpclient "github.com/wneessen/geolookup/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	name              = "osm-nominatim"
)

type Nominatim struct {
	http     *httpclient.Client
	endpoint string
}

type SearchResult struct {
	PlaceID     int64  `json:"place_id"`
	APILat      string `json:"lat"`
	APILon      string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// New returns a Nominatim geocoder that queries the given search endpoint. An empty endpoint
// selects the public OpenStreetMap instance.
func New(client *httpclient.Client, endpoint string) *Nominatim {
	if endpoint == "" {
		endpoint = APISearchEndpoint
	}
	return &Nominatim{
		http:     client,
		endpoint: endpoint,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search looks up the query and returns the first hit. The query is sent as-is. An empty
// result list is not an error, it yields a Result with Found set to false.
func (n *Nominatim) Search(ctx context.Context, address string) (geocode.Result, error) {
	var result []SearchResult

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	code, err := n.http.Get(ctx, n.endpoint, &result, query, nil)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if code != http.StatusOK {
		return geocode.Result{}, fmt.Errorf("unexpected status code from Nominatim API: %d", code)
	}

	if len(result) < 1 {
		return geocode.Result{Query: address}, nil
	}
	return geocode.Result{
		Found:       true,
		Query:       address,
		Latitude:    result[0].APILat,
		Longitude:   result[0].APILon,
		DisplayName: result[0].DisplayName,
	}, nil
}
