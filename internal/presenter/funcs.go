// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/spreak/localize"
)

var i18nVars = map[string]localize.MsgID{
	"location":     "Location",
	"latitude":     "Latitude",
	"longitude":    "Longitude",
	"notfound":     "Location not found.",
	"landmarksin":  "Landmarks in",
	"from":         "from",
	"searchnotice": "Couldn't find direct list. Searching Wikipedia for",
	"nolandmarks":  "No landmark list found for",
	"onwikipedia":  "on Wikipedia",
	"sunrise":      "Sunrise",
	"sunset":       "Sunset",
	"links":        "links",
}

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    p.timeFormat,
		"localizedTime": p.localizedTime,
		"floatFormat":   p.floatFormat,
		"intcomma":      p.intcomma,
		"truncate":      p.truncate,
		"loc":           p.loc,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

func (p *Presenter) loc(val string) string {
	if raw, ok := i18nVars[strings.ToLower(val)]; ok {
		return p.localizer.Get(raw)
	}
	return val
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val, humanize.TimeFormat)
}

func (p *Presenter) timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

func (p *Presenter) intcomma(val int) string {
	return p.humanizer.Intcomma(val)
}

// truncate shortens val to at most width terminal cells, marking cut strings with an ellipsis.
func (p *Presenter) truncate(val string, width int) string {
	return runewidth.Truncate(val, width, "…")
}
