// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocodeearth

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
	APIEndpoint = "https://api.geocode.earth/v1/search"
	name        = "geocode-earth"
)

type GeocodeEarth struct {
	apikey   string
	http     *httpclient.Client
	endpoint string
}

// Response is a GeoJSON feature collection
type Response struct {
	Features []Feature `json:"features"`
	Type     string    `json:"type"`
}

type Feature struct {
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
	Type       string     `json:"type"`
}

// Geometry holds a GeoJSON point, Coordinates is ordered longitude first
type Geometry struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
}

type Properties struct {
	DisplayName string `json:"label"`
	Name        string `json:"name"`
	Country     string `json:"country"`
}

// New returns a geocode.earth geocoder. An empty endpoint selects the public API.
func New(client *httpclient.Client, endpoint, apikey string) *GeocodeEarth {
	if endpoint == "" {
		endpoint = APIEndpoint
	}
	return &GeocodeEarth{
		apikey:   apikey,
		http:     client,
		endpoint: endpoint,
	}
}

func (g *GeocodeEarth) Name() string {
	return name
}

func (g *GeocodeEarth) Search(ctx context.Context, address string) (geocode.Result, error) {
	var response Response

	query := url.Values{}
	query.Set("api_key", g.apikey)
	query.Set("text", address)
	query.Set("size", "1")

	code, err := g.http.Get(ctx, g.endpoint, &response, query, nil)
	if err != nil {
		return geocode.Result{}, fmt.Errorf("failed to retrieve coordinates from geocode.earth API: %w", err)
	}
	if code != http.StatusOK {
		return geocode.Result{}, fmt.Errorf("received non-positive response code from geocode.earth API: %d", code)
	}
	if len(response.Features) < 1 {
		return geocode.Result{Query: address}, nil
	}

	feature := response.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return geocode.Result{}, fmt.Errorf("invalid point geometry in geocode.earth response for %q", address)
	}
	return geocode.Result{
		Found:       true,
		Query:       address,
		Latitude:    strconv.FormatFloat(feature.Geometry.Coordinates[1], 'f', -1, 64),
		Longitude:   strconv.FormatFloat(feature.Geometry.Coordinates[0], 'f', -1, 64),
		DisplayName: feature.Properties.DisplayName,
	}, nil
}
