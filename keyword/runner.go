package keyword

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rulesets/fetcher"
	"rulesets/internal/rulefile"
	"rulesets/logger"
)

type ruleMetadata struct {
	Category    string   `yaml:"category"`
	Keywords    []string `yaml:"keywords"`
	GeneratedAt string   `yaml:"generated_at"`
	LineCount   int      `yaml:"line_count"`
}

type ruleDocument struct {
	Metadata ruleMetadata `yaml:"metadata"`
	Payload  []string     `yaml:"payload"`
}

// CategorySummary is the outcome of one keyword category.
type CategorySummary struct {
	Name  string
	Lines int
	Path  string // empty when nothing matched
}

// Summary is the outcome of a keyword run.
type Summary struct {
	FeedURL     string
	FeedLines   int
	GeneratedAt time.Time
	Categories  []CategorySummary
	TotalLines  int
}

// Runner fetches the feed once and writes one rule file per category.
type Runner struct {
	fetcher     fetcher.Fetcher
	dir         string
	generatedAt time.Time
}

// NewRunner returns a Runner writing into dir. A zero generatedAt means the
// current UTC time.
func NewRunner(f fetcher.Fetcher, dir string, generatedAt time.Time) *Runner {
	return &Runner{
		fetcher:     f,
		dir:         dir,
		generatedAt: generatedAt,
	}
}

// Run filters the feed at feedURL. The feed is the only source, so a fetch
// failure fails the run, as does any write failure.
func (r *Runner) Run(ctx context.Context, feedURL string, categories map[string][]string) (*Summary, error) {
	generatedAt := r.generatedAt.UTC()
	if r.generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	logger.Infof("Downloading %s", feedURL)
	feed, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		FeedURL:     feedURL,
		FeedLines:   len(feed),
		GeneratedAt: generatedAt,
	}

	matches := Filter(feed, categories)
	for _, name := range Names(categories) {
		lines := matches[name]
		cs := CategorySummary{Name: name, Lines: len(lines)}

		if len(lines) == 0 {
			logger.Warnf("No matching lines for category %s", name)
			summary.Categories = append(summary.Categories, cs)
			continue
		}

		path, err := r.write(name, categories[name], lines, generatedAt)
		if err != nil {
			return summary, err
		}
		logger.Infof("Rule-set %s created with %d entries", name, len(lines))

		cs.Path = path
		summary.Categories = append(summary.Categories, cs)
		summary.TotalLines += len(lines)
	}

	return summary, nil
}

func (r *Runner) write(name string, keywords, lines []string, generatedAt time.Time) (string, error) {
	doc := ruleDocument{
		Metadata: ruleMetadata{
			Category:    name,
			Keywords:    keywords,
			GeneratedAt: generatedAt.Format(rulefile.TimeFormat),
			LineCount:   len(lines),
		},
		Payload: textLines(lines),
	}

	path := rulefile.Path(r.dir, name)
	header := rulefile.Title(name) + " Rule-Set (geosite keywords)"
	if err := rulefile.EncodeAndWrite(path, header, doc); err != nil {
		return "", fmt.Errorf("write %s rule file: %w", name, err)
	}
	return path, nil
}

// textLines replaces invalid UTF-8 with U+FFFD. yaml.v3 encodes invalid
// strings as base64 !!binary, which rule consumers cannot read.
func textLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ToValidUTF8(line, "\uFFFD")
	}
	return out
}
