// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wneessen/geolookup/internal/geocode"
	httpclient "github.com/wneessen/geolookup/internal/http"
)

const (
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	name        = "opencage"
)

type OpenCage struct {
	apikey   string
	http     *httpclient.Client
	endpoint string
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Result struct {
	DisplayName string   `json:"formatted"`
	Geometry    Geometry `json:"geometry"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// New returns an OpenCage geocoder. An empty endpoint selects the public API.
func New(client *httpclient.Client, endpoint, apikey string) *OpenCage {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	return &OpenCage{
		apikey:   apikey,
		http:     client,
		endpoint: endpoint,
	}
}

func (o *OpenCage) Name() string {
	return name
}

// Search looks up the query and returns the best match. OpenCage returns numeric coordinates,
// they are formatted with the shortest representation that parses back to the same value.
func (o *OpenCage) Search(ctx context.Context, address string) (geocode.Result, error) {
	var response Response

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")

	code, err := o.http.Get(ctx, o.endpoint, &response, query, nil)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to retrieve coordinates from OpenCage API: %w", err)
	}
	if code != http.StatusOK {
		return geocode.Result{}, fmt.Errorf("unexpected status code from OpenCage API: %d (%s)", code,
			response.Status.Message)
	}
	if len(response.Results) < 1 {
		return geocode.Result{Query: address}, nil
	}

	result := response.Results[0]
	return geocode.Result{
		Found:       true,
		Query:       address,
		Latitude:    strconv.FormatFloat(result.Geometry.Lat, 'f', -1, 64),
		Longitude:   strconv.FormatFloat(result.Geometry.Lon, 'f', -1, 64),
		DisplayName: result.DisplayName,
	}, nil
}
