package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// EnvPrefix prefixes every settings environment variable
const EnvPrefix = "PRINTDISPATCH_"

// LoadOptions selects the optional layers on top of the embedded defaults
type LoadOptions struct {
	// File is a TOML or YAML settings file; "" skips the layer
	File string
	// Fs holds File; nil means the OS filesystem
	Fs afero.Fs
	// Overrides are dotted keys applied last, typically from CLI flags
	Overrides map[string]interface{}
}

// Load merges defaults, the settings file, environment variables and
// overrides, in that order, and validates the result.
func Load(opts LoadOptions) (*Settings, error) {
	k, err := newKoanf(opts)
	if err != nil {
		return nil, err
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsInvalid, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Defaults returns the embedded settings without any overrides.
func Defaults() *Settings {
	s, err := Load(LoadOptions{})
	if err != nil {
		// the embedded file is part of the binary
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return s
}

func newKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	known := envKeyMap(k.Keys())

	// 2. Settings file
	if opts.File != "" {
		parser, err := parserFor(opts.File)
		if err != nil {
			return nil, err
		}
		provider, err := settingsProvider(opts.Fs, opts.File)
		if err != nil {
			return nil, err
		}
		if err := k.Load(provider, parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsInvalid, "failed to load settings from %s", opts.File)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[s]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsInvalid, "failed to load environment settings")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsInvalid, "failed to apply overrides")
		}
	}

	return k, nil
}

// envKeyMap maps PRINTDISPATCH_EXTERNAL_BUSY_STALE_AFTER style names to
// dotted keys. Only keys present in the defaults are reachable, which keeps
// underscores inside key names unambiguous.
func envKeyMap(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[EnvName(key)] = key
	}
	return out
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// settingsProvider reads the settings file from fsys. Files on the OS
// filesystem go through koanf's file provider.
func settingsProvider(fsys afero.Fs, path string) (koanf.Provider, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if _, err := fsys.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsInvalid, "settings file %s is not readable", path)
	}
	if _, ok := fsys.(*afero.OsFs); ok {
		return file.Provider(path), nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsInvalid, "settings file %s is not readable", path)
	}
	return &rawBytesProvider{bytes: data}, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrSettingsInvalid,
			"settings file %s must end in .toml, .yaml or .yml", path)
	}
}
