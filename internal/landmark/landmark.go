// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package landmark finds a Wikipedia page that lists the sights of a city and returns its
// outbound links.
//
// The lookup walks an ordered chain of candidates: three well-known list page titles and, as a
// last resort, the top hit of a full-text search. Candidates are evaluated lazily and the first
// one whose page has at least one link wins. Results of different candidates are never merged.
package landmark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/geolookup/internal/logger"
)

// SearchTemplate is the full-text search term used when none of the title templates matched.
const SearchTemplate = "Tourist attractions in %s"

// TitleTemplates are the page titles tried in order before falling back to a search.
var TitleTemplates = []string{
	"List of tourist attractions in %s",
	"Tourist attractions in %s",
	"List of attractions in %s",
}

// Source provides page links and full-text search. It is satisfied by *wikipedia.Client.
type Source interface {
	Links(ctx context.Context, title string) ([]string, error)
	Search(ctx context.Context, term string) (string, bool, error)
}

// Result is the outcome of a landmark lookup.
type Result struct {
	City string
	// Source is the title of the page the links were read from
	Source   string
	Links    []string
	Found    bool
	Searched bool
	// Attempts counts the evaluated candidates, the search candidate counts once
	Attempts int
}

type candidate struct {
	search bool
	title  func(ctx context.Context, city string) (string, bool, error)
}

type Resolver struct {
	source     Source
	logger     *logger.Logger
	candidates []candidate
	onFallback func(city string)
}

// Option configures a Resolver
type Option func(*Resolver)

// WithFallbackHook registers fn to be called right before the search fallback runs.
func WithFallbackHook(fn func(city string)) Option {
	return func(r *Resolver) {
		r.onFallback = fn
	}
}

func New(source Source, log *logger.Logger, opts ...Option) *Resolver {
	resolver := &Resolver{
		source: source,
		logger: log,
	}
	for _, tpl := range TitleTemplates {
		resolver.candidates = append(resolver.candidates, candidate{title: fixedTitle(tpl)})
	}
	resolver.candidates = append(resolver.candidates, candidate{search: true, title: resolver.searchTitle})
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// Resolve runs the candidate chain for city. A lookup that finds nothing is not an error, the
// returned Result has Found set to false. Any request error aborts the chain.
func (r *Resolver) Resolve(ctx context.Context, city string) (Result, error) {
	result := Result{City: city}

	for _, cand := range r.candidates {
		result.Attempts++
		if cand.search {
			result.Searched = true
		}

		title, ok, err := cand.title(ctx, city)
		if err != nil {
			return result, fmt.Errorf("failed to resolve landmark page title: %w", err)
		}
		if !ok {
			r.logger.Debug("candidate yielded no title", slog.String("city", city),
				slog.Int("attempt", result.Attempts))
			continue
		}

		links, err := r.source.Links(ctx, title)
		if err != nil {
			return result, fmt.Errorf("failed to look up landmarks: %w", err)
		}
		r.logger.Debug("landmark candidate evaluated", slog.String("title", title),
			slog.Int("attempt", result.Attempts), slog.Int("links", len(links)))
		if len(links) == 0 {
			continue
		}

		result.Found = true
		result.Source = title
		result.Links = links
		return result, nil
	}

	return result, nil
}

func (r *Resolver) searchTitle(ctx context.Context, city string) (string, bool, error) {
	if r.onFallback != nil {
		r.onFallback(city)
	}
	return r.source.Search(ctx, fmt.Sprintf(SearchTemplate, city))
}

func fixedTitle(format string) func(context.Context, string) (string, bool, error) {
	return func(_ context.Context, city string) (string, bool, error) {
		return fmt.Sprintf(format, city), true, nil
	}
}
