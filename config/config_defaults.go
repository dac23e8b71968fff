package config

import (
	"math"

	"github.com/c2h5oh/datasize"
)

const (
	DefaultOutputDir      = "rules"
	DefaultTimeoutMs      = 10000
	DefaultUserAgent      = "rulesets/1.0"
	DefaultMaxBodySize    = 50 * datasize.MB
	DefaultGeositeURL     = "https://github.com/MetaCubeX/meta-rules-dat/releases/download/latest/geosite.dat"
	DefaultCategoriesFile = "categories.json"

	// MaxBodySizeLimit bounds max_body_size; sources are read into memory.
	MaxBodySizeLimit = datasize.ByteSize(math.MaxInt32)
)

// setDefaultValues 设置配置文件中缺失字段的默认值
func setDefaultValues(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	setFetchDefaults(&cfg.Fetch)
	setGeositeDefaults(&cfg.Geosite)
}

func setFetchDefaults(fc *FetchConfig) {
	if fc.TimeoutMs == 0 {
		fc.TimeoutMs = DefaultTimeoutMs
	}
	if fc.UserAgent == "" {
		fc.UserAgent = DefaultUserAgent
	}
	if fc.MaxBodySize == 0 {
		fc.MaxBodySize = DefaultMaxBodySize
	}
}

func setGeositeDefaults(gc *GeositeConfig) {
	if gc.URL == "" {
		gc.URL = DefaultGeositeURL
	}
	if gc.CategoriesFile == "" {
		gc.CategoriesFile = DefaultCategoriesFile
	}
}
