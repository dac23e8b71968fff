package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadConfigCreatesDefault 测试配置文件不存在时自动创建默认配置
func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config should be written to disk")

	require.Len(t, cfg.Categories, 3)
	assert.Equal(t, "bank", cfg.Categories[0].Name)
	assert.Equal(t, "ads", cfg.Categories[1].Name)
	assert.Equal(t, "social", cfg.Categories[2].Name)
	assert.Len(t, cfg.Categories[1].URLs, 2)

	assert.Equal(t, "rules", cfg.OutputDir)
	assert.Equal(t, 50*datasize.MB, cfg.Fetch.MaxBodySize)
	assert.Equal(t, DefaultGeositeURL, cfg.Geosite.URL)
	assert.NoError(t, cfg.ValidateCategories())
	assert.NoError(t, cfg.ValidateGeosite())
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
categories:
  - name: " ads "
    urls: ["https://example.com/hosts"]
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultTimeoutMs, cfg.Fetch.TimeoutMs)
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, DefaultMaxBodySize, cfg.Fetch.MaxBodySize)
	assert.Equal(t, DefaultCategoriesFile, cfg.Geosite.CategoriesFile)
	assert.Equal(t, "ads", cfg.Categories[0].Name)
}

func TestParseKeepsCustomValues(t *testing.T) {
	cfg, err := Parse([]byte(`
output_dir: out
fetch:
  timeout_ms: 2500
  max_body_size: 2MB
  requests_per_second: 1.5
geosite:
  url: https://mirror.example/geosite.txt
`))
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 2500, cfg.Fetch.TimeoutMs)
	assert.Equal(t, 2*datasize.MB, cfg.Fetch.MaxBodySize)
	assert.Equal(t, 1.5, cfg.Fetch.RequestsPerSecond)
	assert.Equal(t, "https://mirror.example/geosite.txt", cfg.Geosite.URL)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("categories: [unclosed"))
	assert.Error(t, err)
}

func TestValidateCategories(t *testing.T) {
	tests := []struct {
		name string
		cats []CategoryConfig
		want error
	}{
		{"empty", nil, ErrNoCategories},
		{"blank name", []CategoryConfig{{Name: "", URLs: []string{"u"}}}, ErrInvalidName},
		{"path name", []CategoryConfig{{Name: "../etc", URLs: []string{"u"}}}, ErrInvalidName},
		{"duplicate", []CategoryConfig{{Name: "ads", URLs: []string{"u"}}, {Name: "ads", URLs: []string{"v"}}}, ErrDuplicateName},
		{"no urls", []CategoryConfig{{Name: "ads"}}, ErrNoSources},
		{"ok", []CategoryConfig{{Name: "ads", URLs: []string{"u"}}, {Name: "bank", URLs: []string{"v"}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Categories: tt.cats}

			err := cfg.ValidateCategories()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadKeywordCategories(t *testing.T) {
	path := writeTemp(t, "categories.json", `{
  "bank": ["bank", " BCA ", ""],
  "social": ["facebook", "twitter"]
}`)

	cats, err := LoadKeywordCategories(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bank", "BCA"}, cats["bank"])
	assert.Equal(t, []string{"facebook", "twitter"}, cats["social"])
}

func TestLoadKeywordCategoriesErrors(t *testing.T) {
	_, err := LoadKeywordCategories(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeTemp(t, "bad.json", `["bank"]`)
	_, err = LoadKeywordCategories(bad)
	assert.ErrorIs(t, err, ErrKeywordsFormat)

	badName := writeTemp(t, "name.json", `{"a/b": ["x"]}`)
	_, err = LoadKeywordCategories(badName)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestValidateRejectsOversizedBody(t *testing.T) {
	cfg := &Config{
		Fetch:      FetchConfig{MaxBodySize: 4 * datasize.GB},
		Categories: []CategoryConfig{{Name: "ads", URLs: []string{"u"}}},
	}
	assert.ErrorIs(t, cfg.ValidateCategories(), ErrBodySizeLimit)
}

func TestValidateGeositeRejectsOversizedBody(t *testing.T) {
	cfg, err := Parse([]byte("fetch:\n  max_body_size: 4GB\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.ValidateGeosite(), ErrBodySizeLimit)

	cfg.Fetch.MaxBodySize = MaxBodySizeLimit
	assert.NoError(t, cfg.ValidateGeosite())
}

func TestLoadKeywordCategoriesRejectsTrimmedDuplicates(t *testing.T) {
	path := writeTemp(t, "dup.json", `{"bank": ["bank"], " bank": ["bca"]}`)

	_, err := LoadKeywordCategories(path)
	assert.ErrorIs(t, err, ErrDuplicateName)
}
