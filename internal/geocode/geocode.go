// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"fmt"
	"strconv"
)

// Result is the first hit of a forward geocoding request. Latitude and Longitude hold the
// decimal degrees exactly as the provider returned them.
type Result struct {
	Found       bool
	Query       string
	Latitude    string
	Longitude   string
	DisplayName string
}

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-text place name into its first matching result.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) (Result, error)
}

// Coordinate parses the textual latitude and longitude of the result.
func (r Result) Coordinate() (Coordinate, error) {
	var coords Coordinate
	var err error
	if !r.Found {
		return coords, fmt.Errorf("no coordinates for %q", r.Query)
	}
	coords.Lat, err = strconv.ParseFloat(r.Latitude, 64)
	if err != nil {
		return coords, fmt.Errorf("failed to parse latitude: %w", err)
	}
	coords.Lon, err = strconv.ParseFloat(r.Longitude, 64)
	if err != nil {
		return coords, fmt.Errorf("failed to parse longitude: %w", err)
	}
	if !coords.Valid() {
		return coords, fmt.Errorf("coordinates out of range: %f, %f", coords.Lat, coords.Lon)
	}
	return coords, nil
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
