package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"rulesets/config"
	"rulesets/domainlist"
	"rulesets/fetcher"
	"rulesets/internal/rulefile"
	"rulesets/keyword"
	"rulesets/logger"
	"rulesets/metrics"
)

const updatedEnv = "LAST_UPDATED"

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.Bold)
)

// setup loads the config and applies flag overrides. Everything it returns
// an error for is fatal.
func setup(opts *options) (*config.Config, time.Time, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warnf("%v, using info", err)
	}

	updated := opts.updated
	if updated == "" {
		updated = os.Getenv(updatedEnv)
	}
	generatedAt, err := parseUpdated(updated)
	if err != nil {
		return nil, time.Time{}, err
	}

	return cfg, generatedAt, nil
}

func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// parseUpdated accepts RFC 3339 or a bare date. Empty means "now", which is
// represented by the zero time.
func parseUpdated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339 or YYYY-MM-DD", s)
}

func runBuild(ctx context.Context, opts *options, out io.Writer) error {
	cfg, generatedAt, err := setup(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateCategories(); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}
	if err := ensureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	fmt.Fprintln(out, "Starting Rule-Sets Builder")

	f := fetcher.New(&cfg.Fetch)
	builder := domainlist.NewBuilder(
		domainlist.NewAggregator(f),
		domainlist.NewRuleWriter(cfg.OutputDir),
		generatedAt,
	)

	summary, err := builder.Run(ctx, domainlist.SourcesFromConfig(cfg))
	if err != nil {
		return err
	}

	printBuildSummary(out, cfg.OutputDir, summary)

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveBuild(summary)
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			logger.Errorf("Failed to write metrics file %s: %v", cfg.MetricsFile, err)
		}
	}
	return nil
}

func runGeosite(ctx context.Context, opts *options, out io.Writer) error {
	cfg, generatedAt, err := setup(opts)
	if err != nil {
		return err
	}
	if err := cfg.ValidateGeosite(); err != nil {
		return fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}

	categoriesFile := cfg.Geosite.CategoriesFile
	if !filepath.IsAbs(categoriesFile) {
		categoriesFile = filepath.Join(filepath.Dir(opts.configPath), categoriesFile)
	}
	categories, err := config.LoadKeywordCategories(categoriesFile)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	runner := keyword.NewRunner(fetcher.New(&cfg.Fetch), cfg.OutputDir, generatedAt)
	summary, err := runner.Run(ctx, cfg.Geosite.URL, categories)
	if err != nil {
		return err
	}

	printKeywordSummary(out, summary)

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveKeyword(summary)
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			logger.Errorf("Failed to write metrics file %s: %v", cfg.MetricsFile, err)
		}
	}
	return nil
}

func printBuildSummary(out io.Writer, dir string, s *domainlist.Summary) {
	headColor.Fprintln(out, "\nBuild Summary:")
	for _, c := range s.Categories {
		line := fmt.Sprintf("  - %s: %d domains", rulefile.Title(c.Name), c.Domains)
		if n := len(c.FailedSources); n > 0 {
			line += fmt.Sprintf(" (%d failed sources)", n)
		}
		if c.Domains == 0 {
			warnColor.Fprintln(out, line)
			continue
		}
		okColor.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\n%d domains in total, rule-sets generated in '%s'\n", s.TotalDomains, dir)
}

func printKeywordSummary(out io.Writer, s *keyword.Summary) {
	headColor.Fprintf(out, "\nGeosite Summary (%d feed lines):\n", s.FeedLines)
	for _, c := range s.Categories {
		if c.Lines == 0 {
			warnColor.Fprintf(out, "  - %s: no matching lines\n", c.Name)
			continue
		}
		okColor.Fprintf(out, "  - %s: %d entries\n", c.Name, c.Lines)
	}
	fmt.Fprintln(out, "Done!")
}
