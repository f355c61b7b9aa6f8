// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
)

const (
	configEnv = "GEOLOOKUP"
	dotEnv    = ".env"

	DefaultUserAgent         = "location-coord-finder/1.0"
	DefaultGeocoder          = "osm-nominatim"
	DefaultGeocoderEndpoint  = "https://nominatim.openstreetmap.org/search"
	DefaultWikipediaEndpoint = "https://en.wikipedia.org/w/api.php"

	DefaultCoordinatesTpl = "{{loc \"location\"}}: {{.DisplayName}}\n{{loc \"latitude\"}}: {{.Latitude}}\n" +
		"{{loc \"longitude\"}}: {{.Longitude}}\n"
	DefaultNotFoundTpl     = "{{loc \"notfound\"}}\n"
	DefaultLandmarksTpl    = "\n{{loc \"landmarksin\"}} {{.City}} ({{loc \"from\"}}: {{.Source}}):\n\n{{range .Links}} - {{.}}\n{{end}}"
	DefaultSearchNoticeTpl = "\n {{loc \"searchnotice\"}} '{{.City}}'...\n"
	DefaultNoLandmarksTpl  = "\n{{loc \"nolandmarks\"}} {{.City}} {{loc \"onwikipedia\"}}.\n"
)

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Locale   string     `fig:"locale"`
	// Sent as User-Agent with every API request. Nominatim requires a client identifier.
	UserAgent string `fig:"user_agent"`

	Geocoder struct {
		Provider string `fig:"provider" default:"osm-nominatim"`
		// Empty selects the provider's public API
		Endpoint string        `fig:"endpoint"`
		APIKey   string        `fig:"apikey"`
		Timeout  time.Duration `fig:"timeout" default:"10s"`
	} `fig:"geocoder"`

	Wikipedia struct {
		Endpoint       string        `fig:"endpoint"`
		Timeout        time.Duration `fig:"timeout" default:"10s"`
		FollowContinue bool          `fig:"follow_continue"`
	} `fig:"wikipedia"`

	Templates struct {
		Coordinates  string `fig:"coordinates"`
		NotFound     string `fig:"not_found"`
		Landmarks    string `fig:"landmarks"`
		SearchNotice string `fig:"search_notice"`
		NoLandmarks  string `fig:"no_landmarks"`
	} `fig:"templates"`
}

// NewFromFile loads the configuration from the given file in path. Environment variables take
// precedence over values from the file.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = loadDotEnv(); err != nil {
		return conf, err
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the configuration from the environment only.
func New() (*Config, error) {
	conf := new(Config)
	if err := loadDotEnv(); err != nil {
		return conf, err
	}
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate fills in defaults for unset values and rejects invalid ones.
func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	c.Geocoder.Provider = strings.ToLower(c.Geocoder.Provider)
	switch c.Geocoder.Provider {
	case "", "nominatim", DefaultGeocoder:
		c.Geocoder.Provider = DefaultGeocoder
		if c.Geocoder.Endpoint == "" {
			c.Geocoder.Endpoint = DefaultGeocoderEndpoint
		}
	case "opencage", "geocode-earth":
		if c.Geocoder.APIKey == "" {
			return fmt.Errorf("%s geocoder requires an API key", c.Geocoder.Provider)
		}
	default:
		return fmt.Errorf("unsupported geocoder provider: %s", c.Geocoder.Provider)
	}
	if c.Geocoder.Endpoint != "" {
		if err := validateEndpoint(c.Geocoder.Endpoint); err != nil {
			return fmt.Errorf("invalid geocoder endpoint: %w", err)
		}
	}
	if c.Geocoder.Timeout <= 0 {
		return fmt.Errorf("invalid geocoder timeout: %s", c.Geocoder.Timeout)
	}
	if c.Wikipedia.Endpoint == "" {
		c.Wikipedia.Endpoint = DefaultWikipediaEndpoint
	}
	if err := validateEndpoint(c.Wikipedia.Endpoint); err != nil {
		return fmt.Errorf("invalid wikipedia endpoint: %w", err)
	}
	if c.Wikipedia.Timeout <= 0 {
		return fmt.Errorf("invalid wikipedia timeout: %s", c.Wikipedia.Timeout)
	}
	if c.Templates.Coordinates == "" {
		c.Templates.Coordinates = DefaultCoordinatesTpl
	}
	if c.Templates.NotFound == "" {
		c.Templates.NotFound = DefaultNotFoundTpl
	}
	if c.Templates.Landmarks == "" {
		c.Templates.Landmarks = DefaultLandmarksTpl
	}
	if c.Templates.SearchNotice == "" {
		c.Templates.SearchNotice = DefaultSearchNoticeTpl
	}
	if c.Templates.NoLandmarks == "" {
		c.Templates.NoLandmarks = DefaultNoLandmarksTpl
	}

	return nil
}

// loadDotEnv populates the environment from a .env file in the working directory, if there is one.
// Variables already set in the environment are not overridden.
func loadDotEnv() error {
	err := godotenv.Load(dotEnv)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s file: %w", dotEnv, err)
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
