// Package config maps koanf tagged structs to command line flags and loads their values from
// defaults, a .env file, environment variables and flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/jxsl13/app-lemonator/defaults"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	tagName   = "koanf"
	delimiter = "."
)

// DotEnvFile is read from the working directory if it exists.
var DotEnvFile = ".env"

type Validator interface {
	Validate() error
}

type fieldTags struct {
	short       string
	description string
}

// RegisterFlags registers one flag per koanf tagged field of cfg, which must be a pointer to a struct.
// The field values at the time of the call are the flag defaults.
// The returned function must be called after flag parsing, it fills cfg and validates it.
func RegisterFlags(cfg Validator, persistent bool, cmd *cobra.Command) func() error {
	flagSet := cmd.Flags()
	if persistent {
		flagSet = cmd.PersistentFlags()
	}

	if err := registerFlags(cfg, flagSet); err != nil {
		return func() error {
			return err
		}
	}

	return func() error {
		return Load(cfg, cmd.Flags())
	}
}

func registerFlags(cfg any, flagSet *pflag.FlagSet) error {
	k := koanf.New(delimiter)
	if err := k.Load(structs.Provider(cfg, tagName), nil); err != nil {
		return fmt.Errorf("failed to read config defaults: %w", err)
	}

	tags, err := structTags(cfg)
	if err != nil {
		return err
	}

	flat, _ := maps.Flatten(k.Raw(), nil, delimiter)
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if flagSet.Lookup(key) != nil {
			continue
		}
		t := tags[key]

		switch v := flat[key].(type) {
		case string:
			flagSet.StringP(key, t.short, v, t.description)
		case bool:
			flagSet.BoolP(key, t.short, v, t.description)
		case int:
			flagSet.IntP(key, t.short, v, t.description)
		case int64:
			flagSet.Int64P(key, t.short, v, t.description)
		case []string:
			flagSet.StringSliceP(key, t.short, v, t.description)
		default:
			return fmt.Errorf("unsupported config type %T of key %q", v, key)
		}
	}
	return nil
}

// Load reads defaults from cfg, then .env, environment and flags on top and writes the result back into cfg.
func Load(cfg Validator, flagSet *pflag.FlagSet) error {
	k := koanf.New(delimiter)

	if err := k.Load(structs.Provider(cfg, tagName), nil); err != nil {
		return fmt.Errorf("failed to read config defaults: %w", err)
	}

	dotEnv, err := readDotEnv(DotEnvFile)
	if err != nil {
		return err
	}
	if err := k.Load(confmap.Provider(dotEnv, delimiter), nil); err != nil {
		return fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	if err := k.Load(env.Provider(defaults.EnvPrefix, delimiter, EnvKey), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if flagSet != nil {
		if err := k.Load(posflag.Provider(flagSet, delimiter, k), nil); err != nil {
			return fmt.Errorf("failed to load flags: %w", err)
		}
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: tagName}); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg.Validate()
}

// EnvKey maps LEMONATOR_LOG_LEVEL to log-level.
func EnvKey(s string) string {
	s = strings.TrimPrefix(s, defaults.EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}

func readDotEnv(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	values, err := dotenv.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	result := make(map[string]any, len(values))
	for key, value := range values {
		if !strings.HasPrefix(key, defaults.EnvPrefix) {
			continue
		}
		result[EnvKey(key)] = value
	}
	return result, nil
}

func structTags(cfg any) (map[string]fieldTags, error) {
	v := reflect.ValueOf(cfg)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("config must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	result := make(map[string]fieldTags, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.Split(f.Tag.Get(tagName), ",")[0]
		if !f.IsExported() || key == "" || key == "-" {
			continue
		}
		result[key] = fieldTags{
			short:       f.Tag.Get("short"),
			description: f.Tag.Get("description"),
		}
	}
	return result, nil
}
