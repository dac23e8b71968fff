package domainlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulesets/config"
	"rulesets/fetcher"
)

// stubFetcher serves canned lines per url; urls without an entry fail.
type stubFetcher struct {
	lines map[string][]string
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) ([]string, error) {
	s.calls = append(s.calls, url)
	lines, ok := s.lines[url]
	if !ok {
		return nil, &fetcher.FetchError{URL: url, Err: errors.New("connection refused")}
	}
	return lines, nil
}

func TestSourcesFromConfigKeepsOrder(t *testing.T) {
	cfg := &config.Config{Categories: []config.CategoryConfig{
		{Name: "social", URLs: []string{"s1"}},
		{Name: "ads", URLs: []string{"a1", "a2"}},
	}}

	sources := SourcesFromConfig(cfg)
	require.Len(t, sources, 2)
	assert.Equal(t, Source{Category: "social", URLs: []string{"s1"}}, sources[0])
	assert.Equal(t, Source{Category: "ads", URLs: []string{"a1", "a2"}}, sources[1])
}

func TestAggregateUnionAcrossSources(t *testing.T) {
	f := &stubFetcher{lines: map[string][]string{
		"https://a.example/list": {
			"# header",
			"||ads.example.com^",
			"0.0.0.0 tracker.example.net",
			"shared.example",
		},
		"https://b.example/hosts": {
			"! comment",
			"0.0.0.0 Shared.Example",
			"0.0.0.0 other.example",
			"BAD_HOST",
			"0.0.0.0",
		},
	}}

	cat := NewAggregator(f).Aggregate(context.Background(), Source{
		Category: "ads",
		URLs:     []string{"https://a.example/list", "https://b.example/hosts"},
	})

	assert.Equal(t, "ads", cat.Name)
	assert.Equal(t, []string{"https://a.example/list", "https://b.example/hosts"}, f.calls)
	assert.Equal(t, []string{
		"ads.example.com",
		"other.example",
		"shared.example",
		"tracker.example.net",
	}, cat.Domains.Sorted())

	// |A ∪ B| <= |A| + |B|
	require.Len(t, cat.Results, 2)
	assert.LessOrEqual(t, cat.Domains.Len(), cat.Results[0].Accepted+cat.Results[1].Accepted)

	for _, d := range cat.Domains.Sorted() {
		canonical, ok := Canonicalize(d)
		assert.True(t, ok)
		assert.Equal(t, d, canonical)
	}

	second := cat.Results[1]
	assert.Equal(t, 5, second.Lines)
	assert.Equal(t, 2, second.Accepted)
	assert.Equal(t, 1, second.Added)
	assert.Equal(t, 2, second.Formats[FormatHosts])
	assert.Empty(t, cat.FailedSources())
}

func TestAggregateFetchFailureIsIsolated(t *testing.T) {
	f := &stubFetcher{lines: map[string][]string{
		"ok": {"good.example"},
	}}

	cat := NewAggregator(f).Aggregate(context.Background(), Source{
		Category: "bank",
		URLs:     []string{"down", "ok"},
	})

	assert.Equal(t, []string{"good.example"}, cat.Domains.Sorted())
	assert.Equal(t, []string{"down"}, cat.FailedSources())

	var fetchErr *fetcher.FetchError
	assert.True(t, errors.As(cat.Results[0].Err, &fetchErr))
}

func TestAggregateAllSourcesFail(t *testing.T) {
	f := &stubFetcher{lines: map[string][]string{}}

	cat := NewAggregator(f).Aggregate(context.Background(), Source{
		Category: "social",
		URLs:     []string{"x", "y"},
	})

	assert.Equal(t, 0, cat.Domains.Len())
	assert.Equal(t, []string{"x", "y"}, cat.FailedSources())
}
