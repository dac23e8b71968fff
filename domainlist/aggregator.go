// Package domainlist turns filter-list sources into per-category sets of
// canonical domains and writes them out as YAML rule files.
package domainlist

import (
	"context"
	"time"

	"rulesets/config"
	"rulesets/fetcher"
	"rulesets/logger"
)

// Source is one category and the lists merged into it.
type Source struct {
	Category string
	URLs     []string
}

// SourcesFromConfig keeps the category order of the config file.
func SourcesFromConfig(cfg *config.Config) []Source {
	sources := make([]Source, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		sources = append(sources, Source{
			Category: c.Name,
			URLs:     append([]string(nil), c.URLs...),
		})
	}
	return sources
}

// SourceResult describes what a single url contributed.
type SourceResult struct {
	URL      string
	Lines    int
	Accepted int // lines that produced a canonical domain
	Added    int // domains not already in the category set
	Formats  map[Format]int
	Err      error
}

func (r SourceResult) Failed() bool {
	return r.Err != nil
}

// Category is the merged result of one Source. GeneratedAt and DomainCount
// are filled in by the Builder.
type Category struct {
	Name        string
	Sources     []string
	Domains     *DomainSet
	Results     []SourceResult
	GeneratedAt time.Time
	DomainCount int
}

// FailedSources lists the urls whose fetch failed.
func (c *Category) FailedSources() []string {
	var failed []string
	for _, r := range c.Results {
		if r.Failed() {
			failed = append(failed, r.URL)
		}
	}
	return failed
}

// Aggregator fetches and parses every url of a category.
type Aggregator struct {
	fetcher fetcher.Fetcher
}

func NewAggregator(f fetcher.Fetcher) *Aggregator {
	return &Aggregator{fetcher: f}
}

// Aggregate merges the canonical domains of all urls of src. A url that
// cannot be fetched contributes nothing; the error is logged and kept in
// the matching SourceResult.
func (a *Aggregator) Aggregate(ctx context.Context, src Source) *Category {
	cat := &Category{
		Name:    src.Category,
		Sources: src.URLs,
		Domains: NewDomainSet(),
		Results: make([]SourceResult, 0, len(src.URLs)),
	}

	for _, url := range src.URLs {
		logger.Infof("Fetching %s from %s", src.Category, url)

		lines, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Warnf("Error processing %s: %v", url, err)
			cat.Results = append(cat.Results, SourceResult{URL: url, Err: err})
			continue
		}

		parsed, result := parseLines(lines)
		before := cat.Domains.Len()
		cat.Domains.Union(parsed)
		result.URL = url
		result.Added = cat.Domains.Len() - before
		cat.Results = append(cat.Results, result)

		logger.Debugf("%s: %d lines, %d domains, %d new, formats %v",
			url, result.Lines, result.Accepted, result.Added, result.Formats)
	}

	return cat
}

// parseLines returns the canonical domains of one source.
func parseLines(lines []string) (*DomainSet, SourceResult) {
	set := NewDomainSet()
	result := SourceResult{
		Lines:   len(lines),
		Formats: make(map[Format]int),
	}

	for _, line := range lines {
		candidate, format, ok := parse(line)
		if !ok {
			continue
		}
		domain, ok := Canonicalize(candidate)
		if !ok {
			continue
		}

		result.Accepted++
		result.Formats[format]++
		set.Add(domain)
	}
	return set, result
}
