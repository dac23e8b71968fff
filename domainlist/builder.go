package domainlist

import (
	"context"
	"fmt"
	"time"

	"rulesets/logger"
)

// CategorySummary is the outcome of one category in a build run.
type CategorySummary struct {
	Name          string
	Domains       int
	Path          string // empty when no file was written
	FailedSources []string
}

// Summary is the outcome of a whole build run.
type Summary struct {
	GeneratedAt  time.Time
	Categories   []CategorySummary
	TotalDomains int
}

// Builder runs the aggregator for every category and writes the results.
type Builder struct {
	aggregator  *Aggregator
	writer      *RuleWriter
	generatedAt time.Time
}

// NewBuilder returns a Builder stamping files with generatedAt. A zero
// generatedAt means the current UTC time at the start of each run.
func NewBuilder(agg *Aggregator, w *RuleWriter, generatedAt time.Time) *Builder {
	return &Builder{
		aggregator:  agg,
		writer:      w,
		generatedAt: generatedAt,
	}
}

func (b *Builder) timestamp() time.Time {
	if !b.generatedAt.IsZero() {
		return b.generatedAt.UTC()
	}
	return time.Now().UTC()
}

// BuildAndWrite stamps cat with metadata and writes its rule file. An empty
// category is reported and skipped: no file is written and 0 is returned.
// The returned error is always a filesystem failure.
func (b *Builder) BuildAndWrite(cat *Category) (int, error) {
	return b.buildAndWrite(cat, b.timestamp())
}

func (b *Builder) buildAndWrite(cat *Category, generatedAt time.Time) (int, error) {
	count := cat.Domains.Len()
	cat.DomainCount = count
	cat.GeneratedAt = generatedAt

	if count == 0 {
		logger.Warnf("No domains found for %s", cat.Name)
		return 0, nil
	}

	path, err := b.writer.Write(cat)
	if err != nil {
		return 0, fmt.Errorf("write %s rule file: %w", cat.Name, err)
	}

	logger.Infof("Generated %s with %d domains", path, count)
	return count, nil
}

// Run builds every source in order. A write failure stops the run; the
// summary of the categories done so far is still returned.
func (b *Builder) Run(ctx context.Context, sources []Source) (*Summary, error) {
	summary := &Summary{GeneratedAt: b.timestamp()}

	for _, src := range sources {
		cat := b.aggregator.Aggregate(ctx, src)

		count, err := b.buildAndWrite(cat, summary.GeneratedAt)
		if err != nil {
			return summary, err
		}

		cs := CategorySummary{
			Name:          cat.Name,
			Domains:       count,
			FailedSources: cat.FailedSources(),
		}
		if count > 0 {
			cs.Path = b.writer.Path(cat.Name)
		}
		summary.Categories = append(summary.Categories, cs)
		summary.TotalDomains += count
	}

	return summary, nil
}
