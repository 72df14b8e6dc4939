package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagger2snippet/internal/emitter"
	"github.com/mark3labs/swagger2snippet/internal/example"
	"github.com/mark3labs/swagger2snippet/internal/request"
	"github.com/mark3labs/swagger2snippet/internal/shell"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "SWAGGER2SNIPPET_"

// Config holds the settings shared by the request-rendering commands after
// merging defaults, the config file, the environment and flags, in that
// order.
type Config struct {
	Input      string
	Server     string
	Lang       string
	Variant    string
	Style      string
	AuthType   string
	AuthValue  string
	Headers    request.Headers
	MaxDepth   int
	Verbose    bool
	ConfigPath string
}

func defaultConfig() Config {
	return Config{
		Lang:     "javascript",
		Style:    string(shell.Multiline),
		MaxDepth: example.DefaultMaxDepth,
	}
}

// envConfig mirrors Config for the environment layer. Values stay strings so
// an unset variable can be told apart from a zero value.
type envConfig struct {
	Input     string   `env:"INPUT"`
	Server    string   `env:"SERVER"`
	Lang      string   `env:"LANG"`
	Variant   string   `env:"VARIANT"`
	Style     string   `env:"STYLE"`
	AuthType  string   `env:"AUTH_TYPE"`
	AuthValue string   `env:"AUTH_VALUE"`
	Headers   []string `env:"HEADERS" envSeparator:"|"`
	MaxDepth  string   `env:"MAX_DEPTH"`
	Verbose   string   `env:"VERBOSE"`
}

// resolveConfig builds the shared config for a command.
func resolveConfig(flags *pflag.FlagSet) (Config, error) {
	cfg := defaultConfig()

	configPath, err := flags.GetString("config")
	if err != nil {
		return cfg, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyConfigFromFile(&cfg, configPath); err != nil {
			return cfg, err
		}
	}

	if err := applyConfigFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := applyConfigFlagOverrides(flags, &cfg); err != nil {
		return cfg, err
	}

	cfg.normalize()
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	slog.Debug("resolved config", "file", cfg.ConfigPath, "input", cfg.Input, "lang", cfg.Lang, "variant", cfg.Variant, "style", cfg.Style, "headers", len(cfg.Headers))
	return cfg, nil
}

func applyConfigFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("read config file %q: %v", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return usageErrorf("parse config file %q: %v", path, err)
	}

	for key, value := range raw {
		var ferr error
		switch normalizeKey(key) {
		case "input":
			cfg.Input, ferr = valueAsString(value)
		case "server":
			cfg.Server, ferr = valueAsString(value)
		case "lang", "language":
			cfg.Lang, ferr = valueAsString(value)
		case "variant":
			cfg.Variant, ferr = valueAsString(value)
		case "style":
			cfg.Style, ferr = valueAsString(value)
		case "authtype":
			cfg.AuthType, ferr = valueAsString(value)
		case "authvalue":
			cfg.AuthValue, ferr = valueAsString(value)
		case "maxdepth":
			cfg.MaxDepth, ferr = valueAsInt(value)
		case "verbose":
			cfg.Verbose, ferr = valueAsBool(value)
		case "headers":
			// Decoded separately below to keep mapping order.
		default:
			return usageErrorf("config file %q: unknown field %q", path, key)
		}
		if ferr != nil {
			return usageErrorf("config field %q: %v", key, ferr)
		}
	}

	headers, err := headersFromConfigFile(data)
	if err != nil {
		return usageErrorf("config field \"headers\": %v", err)
	}
	for _, h := range headers {
		cfg.Headers.Set(h.Name, h.Value)
	}
	return nil
}

// headersFromConfigFile decodes the headers entry in file order. A plain map
// would lose the order headers are written in.
func headersFromConfigFile(data []byte) (request.Headers, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if normalizeKey(root.Content[i].Value) != "headers" {
			continue
		}
		var headers request.Headers
		if err := root.Content[i+1].Decode(&headers); err != nil {
			return nil, err
		}
		return headers, nil
	}
	return nil, nil
}

func applyConfigFromEnv(cfg *Config) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix}); err != nil {
		return usageErrorf("environment: %v", err)
	}

	setString := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	setString(&cfg.Input, ec.Input)
	setString(&cfg.Server, ec.Server)
	setString(&cfg.Lang, ec.Lang)
	setString(&cfg.Variant, ec.Variant)
	setString(&cfg.Style, ec.Style)
	setString(&cfg.AuthType, ec.AuthType)
	setString(&cfg.AuthValue, ec.AuthValue)

	for _, line := range ec.Headers {
		if strings.TrimSpace(line) == "" {
			continue
		}
		h, err := request.ParseHeader(line)
		if err != nil {
			return usageErrorf("environment %sHEADERS: %v", EnvPrefix, err)
		}
		cfg.Headers.Set(h.Name, h.Value)
	}

	if v := strings.TrimSpace(ec.MaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			slog.Warn("invalid int env var, using default", "key", EnvPrefix+"MAX_DEPTH", "value", v, "default", cfg.MaxDepth)
		} else {
			cfg.MaxDepth = n
		}
	}
	if v := strings.TrimSpace(ec.Verbose); v != "" {
		b, err := valueAsBool(v)
		if err != nil {
			slog.Warn("invalid bool env var, using default", "key", EnvPrefix+"VERBOSE", "value", v, "default", cfg.Verbose)
		} else {
			cfg.Verbose = b
		}
	}
	return nil
}

// applyConfigFlagOverrides applies flags the user actually set. Flags a
// command does not define are never Changed. Header flags are merged on top
// of configured headers.
func applyConfigFlagOverrides(flags *pflag.FlagSet, cfg *Config) error {
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"input", &cfg.Input},
		{"server", &cfg.Server},
		{"lang", &cfg.Lang},
		{"variant", &cfg.Variant},
		{"style", &cfg.Style},
		{"auth-type", &cfg.AuthType},
		{"auth-value", &cfg.AuthValue},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		value, err := flags.GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(value)
	}

	if flags.Changed("header") {
		values, err := flags.GetStringArray("header")
		if err != nil {
			return err
		}
		for _, raw := range values {
			h, err := request.ParseHeader(raw)
			if err != nil {
				return usageErrorf("--header: %v", err)
			}
			cfg.Headers.Set(h.Name, h.Value)
		}
	}
	if flags.Changed("max-depth") {
		value, err := flags.GetInt("max-depth")
		if err != nil {
			return err
		}
		cfg.MaxDepth = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}
	return nil
}

func (c *Config) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Server = strings.TrimSpace(c.Server)
	c.Lang = strings.ToLower(strings.TrimSpace(c.Lang))
	c.Variant = strings.ToLower(strings.TrimSpace(c.Variant))
	c.Style = strings.ToLower(strings.TrimSpace(c.Style))
	c.AuthType = strings.ToLower(strings.TrimSpace(c.AuthType))
	if c.MaxDepth <= 0 {
		c.MaxDepth = example.DefaultMaxDepth
	}
}

// auth returns the configured credential, or nil when none is set.
func (c *Config) auth() (*request.Auth, error) {
	t, err := request.ParseAuthType(c.AuthType)
	if err != nil {
		return nil, newUsageError(err.Error())
	}
	if t == "" {
		if c.AuthValue != "" {
			return nil, newUsageError("--auth-value needs --auth-type")
		}
		return nil, nil
	}
	return &request.Auth{Type: t, Value: c.AuthValue}, nil
}

func (c *Config) validateLang(cmd string) error {
	lang, ok := emitter.Lookup(c.Lang)
	if !ok {
		ids := make([]string, 0)
		for _, l := range emitter.Languages() {
			if l.Implemented() {
				ids = append(ids, l.ID)
			}
		}
		return usageErrorf("%s: unsupported --lang %q (allowed: %s)", cmd, c.Lang, strings.Join(ids, ", "))
	}
	if !lang.Implemented() {
		return usageErrorf("%s: %s %s", cmd, lang.DisplayName, emitter.ErrNotImplemented)
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value %q", val)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
