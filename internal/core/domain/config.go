package domain

import (
	"fmt"
	"strings"
)

const (
	MatchStrategyFirstMatch = "first-match"
	MatchStrategyCumulative = "cumulative"
)

// Config holds the tool configuration.
type Config struct {
	WorkDir string     `koanf:"workdir" yaml:"workdir"`
	JSON    JSONConfig `koanf:"json" yaml:"json"`
	YAML    YAMLConfig `koanf:"yaml" yaml:"yaml"`
	Text    TextConfig `koanf:"text" yaml:"text"`
	Log     LogConfig  `koanf:"log" yaml:"log"`
}

type JSONConfig struct {
	Indent int `koanf:"indent" yaml:"indent"`
}

type YAMLConfig struct {
	Indent         int  `koanf:"indent" yaml:"indent"`
	IndentSequence bool `koanf:"indent_sequence" yaml:"indent_sequence"`
}

type TextConfig struct {
	// MatchStrategy decides whether only the first matching rewrite rule
	// applies to a line or all of them.
	MatchStrategy string `koanf:"match_strategy" yaml:"match_strategy"`
}

type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

func CreateDefaultConfig() Config {
	return Config{
		WorkDir: "",
		JSON: JSONConfig{
			Indent: 4,
		},
		YAML: YAMLConfig{
			Indent:         2,
			IndentSequence: true,
		},
		Text: TextConfig{
			MatchStrategy: MatchStrategyFirstMatch,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func (c *Config) Validate() error {
	if c.JSON.Indent < 0 || c.JSON.Indent > 16 {
		return fmt.Errorf("json.indent must be between 0 and 16, got %d", c.JSON.Indent)
	}
	if c.YAML.Indent < 1 || c.YAML.Indent > 16 {
		return fmt.Errorf("yaml.indent must be between 1 and 16, got %d", c.YAML.Indent)
	}

	switch c.Text.MatchStrategy {
	case MatchStrategyFirstMatch, MatchStrategyCumulative:
	default:
		return fmt.Errorf(
			"text.match_strategy must be %q or %q, got %q",
			MatchStrategyFirstMatch,
			MatchStrategyCumulative,
			c.Text.MatchStrategy,
		)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if strings.Contains(c.WorkDir, "\x00") {
		return fmt.Errorf("workdir contains invalid characters")
	}

	return nil
}
