// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter renders lookup results to the console through the configured templates.
package presenter

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"

	"github.com/wneessen/geolookup/internal/config"
	"github.com/wneessen/geolookup/internal/geocode"
	"github.com/wneessen/geolookup/internal/landmark"
	"github.com/wneessen/geolookup/internal/vartype"
)

// CoordinatesContext is the data available to the coordinates template. Parsed values and the
// sun times are only set when the textual coordinates could be parsed.
type CoordinatesContext struct {
	geocode.Result

	Lat         vartype.VarFloat64
	Lon         vartype.VarFloat64
	SunriseTime vartype.VarTime
	SunsetTime  vartype.VarTime
}

// LandmarksContext is the data available to the landmark templates.
type LandmarksContext struct {
	landmark.Result

	Count int
}

type Presenter struct {
	coordinates  *template.Template
	notFound     *template.Template
	landmarks    *template.Template
	searchNotice *template.Template
	noLandmarks  *template.Template

	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	now       func() time.Time
}

func New(conf *config.Config, loc *spreak.Localizer, lang language.Tag) (*Presenter, error) {
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}
	p := &Presenter{
		localizer: loc,
		humanizer: collection.CreateHumanizer(lang),
		now:       time.Now,
	}

	tpls := []struct {
		name   string
		text   string
		target **template.Template
	}{
		{"coordinates", conf.Templates.Coordinates, &p.coordinates},
		{"not_found", conf.Templates.NotFound, &p.notFound},
		{"landmarks", conf.Templates.Landmarks, &p.landmarks},
		{"search_notice", conf.Templates.SearchNotice, &p.searchNotice},
		{"no_landmarks", conf.Templates.NoLandmarks, &p.noLandmarks},
	}
	for _, tpl := range tpls {
		parsed, err := template.New(tpl.name).Funcs(p.templateFuncMap()).Parse(tpl.text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", tpl.name, err)
		}
		*tpl.target = parsed
	}

	return p, nil
}

// Prompt returns the localized console prompt.
func (p *Presenter) Prompt(msg string) string {
	return p.localizer.Get(msg)
}

// Coordinates writes a geocoding result, or the not found message if the place is unknown.
func (p *Presenter) Coordinates(w io.Writer, result geocode.Result) error {
	if !result.Found {
		return p.notFound.Execute(w, p.BuildCoordinatesContext(result))
	}
	return p.coordinates.Execute(w, p.BuildCoordinatesContext(result))
}

// SearchNotice writes the notice shown before the landmark search fallback runs.
func (p *Presenter) SearchNotice(w io.Writer, city string) error {
	return p.searchNotice.Execute(w, LandmarksContext{Result: landmark.Result{City: city}})
}

// Landmarks writes the links of a landmark lookup, or the nothing found message.
func (p *Presenter) Landmarks(w io.Writer, result landmark.Result) error {
	ctx := LandmarksContext{Result: result, Count: len(result.Links)}
	if !result.Found {
		return p.noLandmarks.Execute(w, ctx)
	}
	return p.landmarks.Execute(w, ctx)
}

func (p *Presenter) BuildCoordinatesContext(result geocode.Result) CoordinatesContext {
	ctx := CoordinatesContext{Result: result}
	coords, err := result.Coordinate()
	if err != nil {
		return ctx
	}
	ctx.Lat.Set(coords.Lat)
	ctx.Lon.Set(coords.Lon)

	now := p.now()
	rise, set := sunrise.SunriseSunset(coords.Lat, coords.Lon, now.Year(), now.Month(), now.Day())
	// polar day and night have no sunrise or sunset
	if !rise.IsZero() && !set.IsZero() {
		ctx.SunriseTime.Set(rise)
		ctx.SunsetTime.Set(set)
	}
	return ctx
}
