package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/unohee/ci-templates/pkg/models"
	yaml "gopkg.in/yaml.v2"
)

// DefaultExcludes are always skipped. They hold generated or vendored code
// that would drown real findings in noise.
var DefaultExcludes = []string{
	"__pycache__",
	".git",
	".venv",
	"venv",
	"node_modules",
	"archive",
	"trash",
}

// Config is the resolved, immutable scan configuration. It is built once at
// process start (defaults, then config file, then environment, then flags)
// and passed by value through every component. Nothing reads the environment
// after Resolve returns.
type Config struct {
	Targets         []string
	FeaturePatterns []string
	Excludes        []string
	Extensions      []string
	Strict          bool
	CI              bool
	JSON            bool

	compiled []*regexp.Regexp
}

// FileConfig is the optional on-disk overlay, decoded from YAML.
type FileConfig struct {
	FeaturePatterns []string `yaml:"feature_patterns"`
	ExcludePaths    []string `yaml:"exclude_paths"`
	Extensions      []string `yaml:"extensions"`
	Strict          bool     `yaml:"strict"`
}

// Overrides carries CLI flag values into Resolve. Empty fields leave the
// lower layers untouched.
type Overrides struct {
	Patterns   string
	Excludes   string
	ConfigFile string
	Strict     bool
	CI         bool
	JSON       bool
}

// Resolve builds the final Config. Precedence, lowest first:
// built-in defaults, YAML config file, environment, CLI flags.
// A malformed feature pattern is a configuration error, not a warning.
func Resolve(targets []string, ov Overrides) (Config, error) {
	// A stray .env next to the invocation is honored before env lookup.
	_ = godotenv.Load()

	cfg := Config{
		Targets:         append([]string(nil), targets...),
		FeaturePatterns: SplitList(models.DefaultFeaturePatterns),
		Excludes:        append([]string(nil), DefaultExcludes...),
		Extensions:      []string{".py"},
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = []string{"."}
	}

	if ov.ConfigFile != "" {
		fc, err := LoadFile(ov.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		if len(fc.FeaturePatterns) > 0 {
			cfg.FeaturePatterns = fc.FeaturePatterns
		}
		cfg.Excludes = append(cfg.Excludes, fc.ExcludePaths...)
		if len(fc.Extensions) > 0 {
			cfg.Extensions = fc.Extensions
		}
		cfg.Strict = fc.Strict
	}

	if env := os.Getenv(models.EnvFeaturePatterns); env != "" {
		cfg.FeaturePatterns = SplitList(env)
	}
	if env := os.Getenv(models.EnvExcludePaths); env != "" {
		cfg.Excludes = append(cfg.Excludes, SplitList(env)...)
	}

	if ov.Patterns != "" {
		cfg.FeaturePatterns = SplitList(ov.Patterns)
	}
	if ov.Excludes != "" {
		cfg.Excludes = append(cfg.Excludes, SplitList(ov.Excludes)...)
	}
	if ov.Strict {
		cfg.Strict = true
	}
	cfg.CI = ov.CI
	cfg.JSON = ov.JSON

	if len(cfg.FeaturePatterns) == 0 {
		return Config{}, fmt.Errorf("feature pattern set is empty")
	}

	// Patterns double as substrings and regexes: an unanchored,
	// case-insensitive regex subsumes plain substring matching.
	for _, p := range cfg.FeaturePatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Config{}, fmt.Errorf("malformed feature pattern %q: %w", p, err)
		}
		cfg.compiled = append(cfg.compiled, re)
	}

	return cfg, nil
}

// LoadFile decodes a YAML config file. Unknown fields are rejected so that
// a typo in the file surfaces as an error instead of silently doing nothing.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fc FileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// MatchesFeature reports whether a variable name (or assignment target text)
// looks like a feature per the configured patterns.
func (c Config) MatchesFeature(name string) bool {
	for _, re := range c.compiled {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// HasSourceExtension reports whether the path carries a recognized extension.
func (c Config) HasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// SplitList parses a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
