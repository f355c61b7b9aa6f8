// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vorlif/spreak"

	"github.com/wneessen/geolookup/internal/config"
	httpclient "github.com/wneessen/geolookup/internal/http"
	"github.com/wneessen/geolookup/internal/i18n"
	"github.com/wneessen/geolookup/internal/logger"
	"github.com/wneessen/geolookup/internal/presenter"
)

// app carries the state shared by all subcommands. It is populated by the root command before
// any subcommand runs.
type app struct {
	confPath string
	// transport replaces the default HTTP transport when set
	transport http.RoundTripper
	logOutput io.Writer

	conf      *config.Config
	log       *logger.Logger
	localizer *spreak.Localizer
	presenter *presenter.Presenter
}

func newApp() *app {
	return &app{
		log: logger.New(slog.LevelError),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "geolookup",
		Short: "Look up coordinates and landmarks of places",
		Long: `geolookup queries public web APIs for information about a place: its coordinates through
OpenStreetMap Nominatim and a list of landmarks through Wikipedia.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.confPath, "config", "c", "", "path to the config file")
	root.AddCommand(newCoordsCmd(a), newLandmarksCmd(a))
	return root
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	conf, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.conf = conf

	if a.logOutput != nil {
		a.log = logger.NewLogger(conf.LogLevel, a.logOutput)
	} else {
		a.log = logger.New(conf.LogLevel)
	}

	a.localizer, err = i18n.New(conf.Locale)
	if err != nil {
		return fmt.Errorf("failed to initialize localizer: %w", err)
	}
	a.presenter, err = presenter.New(conf, a.localizer, i18n.Language(conf.Locale))
	if err != nil {
		return fmt.Errorf("failed to initialize presenter: %w", err)
	}
	a.log.Debug("geolookup initialized", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	return nil
}

// loadConfig reads the config file given on the command line, or the one in the default
// location, or the environment only.
func (a *app) loadConfig() (*config.Config, error) {
	if a.confPath != "" {
		conf, err := config.NewFromFile(filepath.Dir(a.confPath), filepath.Base(a.confPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		return conf, nil
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		conf, err := config.NewFromFile(path, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		return conf, nil
	}
	conf, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return conf, nil
}

func (a *app) httpClient(timeout time.Duration) *httpclient.Client {
	client := httpclient.New(a.log, httpclient.WithUserAgent(a.conf.UserAgent), httpclient.WithTimeout(timeout))
	if a.transport != nil {
		client.Transport = a.transport
	}
	return client
}

// readQuery joins the positional arguments, or prompts for one line on stdin if there are none.
func (a *app) readQuery(cmd *cobra.Command, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), a.presenter.Prompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
