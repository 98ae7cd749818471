package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"autoparam/utils"
)

// StringPrefix controls how generated strings are prefixed.
type StringPrefix string

const (
	PrefixName StringPrefix = "name" // member name when known, otherwise the type name
	PrefixType StringPrefix = "type" // always the type name
	PrefixNone StringPrefix = "none" // bare random text
)

const (
	defaultRepeatCount = 3
	defaultMaxDepth    = 8
	maxRepeatCount     = 1024
	maxDepthLimit      = 64
)

// Config holds generation settings.
type Config struct {
	// Seed for the random source; 0 picks a time-based seed.
	Seed uint64 `yaml:"seed,omitempty"`
	// RepeatCount is the number of elements generated for slices, maps and channel buffers.
	RepeatCount int `yaml:"repeat_count,omitempty"`
	// MaxDepth bounds nested generation; deeper requests fail with ErrRecursion.
	MaxDepth int `yaml:"max_depth,omitempty"`
	// StringPrefix selects the prefix of generated strings.
	StringPrefix StringPrefix `yaml:"string_prefix,omitempty"`
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		RepeatCount:  defaultRepeatCount,
		MaxDepth:     defaultMaxDepth,
		StringPrefix: PrefixName,
	}
}

// LoadConfig loads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read fixture config %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML data into a Config, applying defaults and validating ranges.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse fixture config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Marshal serializes a Config to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the configured ranges.
func (c Config) Validate() error {
	if !utils.IsInRange(0, c.RepeatCount, maxRepeatCount) {
		return fmt.Errorf("repeat_count %d out of range [0, %d]", c.RepeatCount, maxRepeatCount)
	}

	if !utils.IsInRange(1, c.MaxDepth, maxDepthLimit) {
		return fmt.Errorf("max_depth %d out of range [1, %d]", c.MaxDepth, maxDepthLimit)
	}

	switch c.StringPrefix {
	case PrefixName, PrefixType, PrefixNone:
	default:
		return fmt.Errorf("unknown string_prefix %q", c.StringPrefix)
	}

	return nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.RepeatCount == 0 {
		c.RepeatCount = defaultRepeatCount
	}

	if c.MaxDepth == 0 {
		c.MaxDepth = defaultMaxDepth
	}

	if c.StringPrefix == "" {
		c.StringPrefix = PrefixName
	}
}
