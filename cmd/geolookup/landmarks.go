// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wneessen/geolookup/internal/landmark"
	"github.com/wneessen/geolookup/internal/logger"
	"github.com/wneessen/geolookup/internal/wikipedia"
)

const landmarksPrompt = "Enter a city name: "

func newLandmarksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "landmarks [city...]",
		Short: "Print the landmarks of a city",
		Long: `Looks for a Wikipedia page listing the tourist attractions of a city and prints the pages
it links to. If none of the usual list pages exists, the top hit of a Wikipedia search is used.
Without arguments, the city name is read from stdin.`,
		RunE: a.runLandmarks,
	}
}

func (a *app) runLandmarks(cmd *cobra.Command, args []string) error {
	city, err := a.readQuery(cmd, args, landmarksPrompt)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	wiki := wikipedia.New(a.httpClient(a.conf.Wikipedia.Timeout), a.log, a.conf.Wikipedia.Endpoint,
		a.conf.Wikipedia.FollowContinue)
	resolver := landmark.New(wiki, a.log, landmark.WithFallbackHook(func(name string) {
		if err := a.presenter.SearchNotice(out, name); err != nil {
			a.log.Warn("failed to print search notice", logger.Err(err))
		}
	}))

	result, err := resolver.Resolve(cmd.Context(), city)
	if err != nil {
		return fmt.Errorf("failed to look up landmarks: %w", err)
	}
	a.log.Debug("landmark lookup finished", slog.String("city", city), slog.Bool("found", result.Found),
		slog.Int("attempts", result.Attempts), slog.Bool("searched", result.Searched))

	return a.presenter.Landmarks(out, result)
}
