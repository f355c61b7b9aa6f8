// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wneessen/geolookup/internal/config"
	"github.com/wneessen/geolookup/internal/geocode"
	geocodeearth "github.com/wneessen/geolookup/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/geolookup/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/geolookup/internal/geocode/provider/osm-nominatim"
)

const coordsPrompt = "Enter a location name: "

func newCoordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "coords [place...]",
		Short: "Print the coordinates of a place",
		Long: `Looks up a place name with OpenStreetMap Nominatim and prints the latitude, longitude and
full name of the first match. Without arguments, the place name is read from stdin.`,
		RunE: a.runCoords,
	}
}

func (a *app) runCoords(cmd *cobra.Command, args []string) error {
	query, err := a.readQuery(cmd, args, coordsPrompt)
	if err != nil {
		return err
	}

	geocoder, err := a.selectGeocodeProvider()
	if err != nil {
		return err
	}
	result, err := geocoder.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to look up coordinates: %w", err)
	}
	a.log.Debug("geocoding finished", slog.String("provider", geocoder.Name()),
		slog.String("query", query), slog.Bool("found", result.Found))

	return a.presenter.Coordinates(cmd.OutOrStdout(), result)
}

func (a *app) selectGeocodeProvider() (geocode.Geocoder, error) {
	client := a.httpClient(a.conf.Geocoder.Timeout)
	endpoint := a.conf.Geocoder.Endpoint

	switch a.conf.Geocoder.Provider {
	case config.DefaultGeocoder:
		return nominatim.New(client, endpoint), nil
	case "opencage":
		return opencage.New(client, endpoint, a.conf.Geocoder.APIKey), nil
	case "geocode-earth":
		return geocodeearth.New(client, endpoint, a.conf.Geocoder.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder provider: %s", a.conf.Geocoder.Provider)
	}
}
