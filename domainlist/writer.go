package domainlist

import (
	"rulesets/internal/rulefile"
)

type ruleMetadata struct {
	Category    string   `yaml:"category"`
	Sources     []string `yaml:"sources"`
	GeneratedAt string   `yaml:"generated_at"`
	DomainCount int      `yaml:"domain_count"`
}

type ruleDocument struct {
	Metadata ruleMetadata `yaml:"metadata"`
	Payload  []string     `yaml:"payload"`
}

// RuleWriter serializes categories into <dir>/<category>.yaml. The
// directory must already exist.
type RuleWriter struct {
	dir string
}

func NewRuleWriter(dir string) *RuleWriter {
	return &RuleWriter{dir: dir}
}

func (w *RuleWriter) Path(category string) string {
	return rulefile.Path(w.dir, category)
}

// Write replaces the rule file of cat and returns its path.
func (w *RuleWriter) Write(cat *Category) (string, error) {
	doc := ruleDocument{
		Metadata: ruleMetadata{
			Category:    cat.Name,
			Sources:     cat.Sources,
			GeneratedAt: cat.GeneratedAt.UTC().Format(rulefile.TimeFormat),
			DomainCount: cat.DomainCount,
		},
		Payload: cat.Domains.Sorted(),
	}

	path := w.Path(cat.Name)
	header := rulefile.Title(cat.Name) + " Rule-Set"
	if err := rulefile.EncodeAndWrite(path, header, doc); err != nil {
		return "", err
	}
	return path, nil
}
