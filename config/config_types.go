package config

import "github.com/c2h5oh/datasize"

// Config 主配置结构
type Config struct {
	OutputDir   string           `yaml:"output_dir,omitempty" json:"output_dir"`
	LogLevel    string           `yaml:"log_level,omitempty" json:"log_level"`
	MetricsFile string           `yaml:"metrics_file,omitempty" json:"metrics_file"`
	Fetch       FetchConfig      `yaml:"fetch" json:"fetch"`
	Categories  []CategoryConfig `yaml:"categories" json:"categories"`
	Geosite     GeositeConfig    `yaml:"geosite" json:"geosite"`
}

// FetchConfig controls how upstream lists are downloaded.
type FetchConfig struct {
	TimeoutMs   int               `yaml:"timeout_ms,omitempty" json:"timeout_ms"`
	UserAgent   string            `yaml:"user_agent,omitempty" json:"user_agent"`
	MaxBodySize datasize.ByteSize `yaml:"max_body_size,omitempty" json:"max_body_size"`

	// 0 disables pacing
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty" json:"requests_per_second"`
}

// CategoryConfig is one output rule set and the lists merged into it.
type CategoryConfig struct {
	Name string   `yaml:"name" json:"name"`
	URLs []string `yaml:"urls" json:"urls"`
}

// GeositeConfig configures the keyword pipeline.
type GeositeConfig struct {
	URL            string `yaml:"url,omitempty" json:"url"`
	CategoriesFile string `yaml:"categories_file,omitempty" json:"categories_file"`
}
