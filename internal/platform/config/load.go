package config

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultAPIVersion is the Notion-Version the translators are written
// against. defaults.yaml carries the same value.
const DefaultAPIVersion = "2022-06-28"

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// bytesProvider feeds an in-memory YAML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytesProvider requires a parser")
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir reads base.yaml and the profile file from dir instead of
// ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// Load builds the configuration for profile from four layers, later ones
// winning:
//
//	defaults.yaml (embedded)
//	{configDir}/base.yaml
//	{configDir}/{profile}.yaml
//	APP_* environment variables
//
// An environment variable is matched against the keys the earlier layers
// define, so underscores inside a key survive:
//
//	APP_SERVER_READ_TIMEOUT        -> server.read_timeout
//	APP_CLIENT_AUTH_TOKEN          -> client.auth_token
//	APP_CLIENT_RETRY_MAX_ATTEMPTS  -> client.retry.max_attempts
//	APP_PAGES_MAX_BLOCK_CHILDREN   -> pages.max_block_children
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	if err := k.Load(bytesProvider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading built-in defaults: %w", err)
	}

	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.configDir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(envProvider(k.Keys()), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}

	return &cfg, nil
}

// envProvider maps APP_* variables onto known keys. Variables that match no
// known key fall back to treating every underscore as a level separator.
func envProvider(known []string) koanf.Provider {
	byEnvName := make(map[string]string, len(known))
	for _, key := range known {
		byEnvName[strings.ReplaceAll(key, ".", "_")] = key
	}

	return env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			if key, ok := byEnvName[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	})
}

// checkProfile rejects names that would escape the config directory.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a plain name", profile)
	}
	return nil
}
