package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/mdtouch/pkg/config"
)

// EnvPrefix prefixes every mdtouch environment variable.
const EnvPrefix = "MDTOUCH_"

type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

//nolint:gochecknoglobals // read-only lookup table
var envVars = []envVar{
	{"WIKI_LINKS", "Recognize [[wiki links]]: true or false", boolSetter(func(c *config.Config, b bool) {
		c.WikiLinks = config.Bool(b)
	})},
	{"DETECT_LANGUAGE", "Guess untagged fence languages: true or false", boolSetter(func(c *config.Config, b bool) {
		c.DetectLanguage = config.Bool(b)
	})},
	{"BACKUP_ENABLED", "Back up files before the first save: true or false", boolSetter(func(c *config.Config, b bool) {
		c.Backup.Enabled = config.Bool(b)
	})},
	{"BACKUP_SUFFIX", "Backup file suffix", func(c *config.Config, v string) error {
		c.Backup.Suffix = v
		return nil
	}},
	{"EXPORT_WIKI_BASE_URL", "Base URL for exported wiki links", func(c *config.Config, v string) error {
		c.Export.WikiBaseURL = v
		return nil
	}},
	{"EXPORT_WIKI_EXTENSION", "Extension for exported wiki links", func(c *config.Config, v string) error {
		c.Export.WikiExtension = v
		return nil
	}},
	{"LOG_LEVEL", "Log level: debug, info, warn or error", func(c *config.Config, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"COLOR", "Colour output: auto, always or never", func(c *config.Config, v string) error {
		c.Color = config.ColorMode(v)
		return nil
	}},
}

// LoadFromEnv applies MDTOUCH_* overrides to cfg. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns the supported variables and their descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[EnvPrefix+ev.suffix] = ev.description
	}
	return out
}

// EnvVarNames returns the supported variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, EnvPrefix+ev.suffix)
	}
	sort.Strings(names)
	return names
}
