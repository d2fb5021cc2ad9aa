package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vk/optionkit/options"
	"github.com/zclconf/go-cty/cty"
)

// Config holds all the necessary configuration for an App instance to run.
// It is built through configSchema, so every setting is validated the same
// way the library validates any other configuration bag.
type Config struct {
	options.Base

	paths     []string `option:"paths"`
	logLevel  string   `option:"log_level"`
	logFormat string   `option:"log_format"`
	format    string   `option:"format"`
	noColor   bool     `option:"no_color"`
}

func stringVals(vs ...string) []cty.Value {
	out := make([]cty.Value, len(vs))
	for i, v := range vs {
		out[i] = cty.StringVal(v)
	}
	return out
}

var configSchema = options.NewSchema("config").
	Option("paths", options.Settings{
		Type:   options.Type(cty.List(cty.String)),
		Reader: true,
	}).
	Option("log_level", options.Settings{
		Type:    options.Type(cty.String),
		Allow:   stringVals("debug", "info", "warn", "error"),
		Reader:  true,
		Default: options.Literal(cty.StringVal("info")),
	}).
	Option("log_format", options.Settings{
		Type:    options.Type(cty.String),
		Allow:   stringVals("text", "json"),
		Reader:  true,
		Default: options.Literal(cty.StringVal("text")),
	}).
	Option("format", options.Settings{
		Type:    options.Type(cty.String),
		Allow:   stringVals("table", "json"),
		Reader:  true,
		Default: options.Literal(cty.StringVal("table")),
	}).
	Option("no_color", options.Settings{
		Type:    options.Type(cty.Bool),
		Reader:  true,
		Default: options.Literal(cty.False),
	})

// NewConfig builds a Config from a configuration bag.
func NewConfig(ctx context.Context, bag options.Bag) (*Config, error) {
	cfg := &Config{}
	if err := configSchema.Init(ctx, cfg, bag); err != nil {
		return nil, err
	}

	// The schema has no notion of a required option; paths is enforced here.
	if len(cfg.paths) == 0 {
		return nil, errors.New("at least one manifest path is required")
	}

	return cfg, nil
}

func (c *Config) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

func (c *Config) LogLevel() string  { return c.logLevel }
func (c *Config) LogFormat() string { return c.logFormat }
func (c *Config) Format() string    { return c.format }
func (c *Config) NoColor() bool     { return c.noColor }
