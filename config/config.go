package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoCategories   = errors.New("no categories configured")
	ErrInvalidName    = errors.New("invalid category name")
	ErrDuplicateName  = errors.New("duplicate category name")
	ErrNoSources      = errors.New("category has no urls")
	ErrNoGeositeURL   = errors.New("geosite url is empty")
	ErrKeywordsFormat = errors.New("keyword categories must be a JSON object of string arrays")
	ErrBodySizeLimit  = errors.New("max_body_size exceeds limit")
)

// CreateDefaultConfig 创建默认配置文件
func CreateDefaultConfig(filePath string) error {
	return os.WriteFile(filePath, []byte(DefaultConfigContent), 0644)
}

// LoadConfig 从 YAML 文件加载配置
// A missing file is created from DefaultConfigContent first.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := CreateDefaultConfig(filePath); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		data, err = os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
	}

	return Parse(data)
}

// Parse decodes YAML config data and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaultValues(&cfg)
	for i := range cfg.Categories {
		cfg.Categories[i].Name = strings.TrimSpace(cfg.Categories[i].Name)
	}

	return &cfg, nil
}

// ValidateCategories checks the domain-list categories. Names become file
// names, so they must be unique and free of path separators.
func (c *Config) ValidateCategories() error {
	if err := c.validateFetch(); err != nil {
		return err
	}
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}

	seen := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if !validName(cat.Name) {
			return fmt.Errorf("categories[%d] %q: %w", i, cat.Name, ErrInvalidName)
		}
		if _, dup := seen[cat.Name]; dup {
			return fmt.Errorf("categories[%d] %q: %w", i, cat.Name, ErrDuplicateName)
		}
		seen[cat.Name] = struct{}{}

		if len(cat.URLs) == 0 {
			return fmt.Errorf("category %q: %w", cat.Name, ErrNoSources)
		}
	}
	return nil
}

// ValidateGeosite checks the keyword pipeline settings.
func (c *Config) ValidateGeosite() error {
	if err := c.validateFetch(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Geosite.URL) == "" {
		return ErrNoGeositeURL
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.MaxBodySize > MaxBodySizeLimit {
		return fmt.Errorf("%s > %s: %w", c.Fetch.MaxBodySize.HR(), MaxBodySizeLimit.HR(), ErrBodySizeLimit)
	}
	return nil
}

// LoadKeywordCategories reads the keyword mapping used by the geosite
// pipeline. Names and keywords are trimmed and empty keywords dropped, since
// an empty keyword would match every line. Names equal after trimming are
// rejected as duplicates.
func LoadKeywordCategories(filePath string) (map[string][]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read keyword categories: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", filePath, ErrKeywordsFormat, err)
	}

	categories := make(map[string][]string, len(raw))
	for name, keywords := range raw {
		name = strings.TrimSpace(name)
		if !validName(name) {
			return nil, fmt.Errorf("%s: %q: %w", filePath, name, ErrInvalidName)
		}
		if _, dup := categories[name]; dup {
			return nil, fmt.Errorf("%s: %q: %w", filePath, name, ErrDuplicateName)
		}

		cleaned := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				cleaned = append(cleaned, kw)
			}
		}
		categories[name] = cleaned
	}

	return categories, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
