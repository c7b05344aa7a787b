// Package config defines the mdtouch configuration model and its defaults.
// Loading and merging live in internal/configloader.
package config

// ColorMode controls terminal colour output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known colour mode. Empty means auto.
func (m ColorMode) IsValid() bool {
	switch m {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// OutputFormat selects how the blocks command prints a block list.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// BackupConfig controls the backup written before a document is first saved.
type BackupConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Suffix  string `yaml:"suffix,omitempty"`
}

// ExportConfig controls HTML export.
type ExportConfig struct {
	// WikiBaseURL is prefixed to wiki-link targets.
	WikiBaseURL string `yaml:"wiki_base_url,omitempty"`

	// WikiExtension is appended to wiki-link targets, e.g. ".html".
	WikiExtension string `yaml:"wiki_extension,omitempty"`
}

// Config is the root configuration.
//
// Pointer fields distinguish "unset" from an explicit false so that a later
// layer can turn a feature off.
type Config struct {
	WikiLinks      *bool        `yaml:"wiki_links,omitempty"`
	DetectLanguage *bool        `yaml:"detect_language,omitempty"`
	Backup         BackupConfig `yaml:"backup,omitempty"`
	Export         ExportConfig `yaml:"export,omitempty"`
	LogLevel       string       `yaml:"log_level,omitempty"`
	Color          ColorMode    `yaml:"color,omitempty"`
}

// Default backup suffix and export extension.
const (
	DefaultBackupSuffix  = ".bak"
	DefaultWikiExtension = ".html"
)

// NewConfig returns a Config holding the built-in defaults.
func NewConfig() *Config {
	return &Config{
		WikiLinks:      Bool(true),
		DetectLanguage: Bool(true),
		Backup: BackupConfig{
			Enabled: Bool(false),
			Suffix:  DefaultBackupSuffix,
		},
		Export: ExportConfig{
			WikiExtension: DefaultWikiExtension,
		},
		LogLevel: "info",
		Color:    ColorAuto,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// WikiLinksEnabled reports whether [[wiki links]] are recognized. Default true.
func (c *Config) WikiLinksEnabled() bool {
	return boolOr(c.WikiLinks, true)
}

// LanguageDetectionEnabled reports whether untagged fences get a guessed
// language. Default true.
func (c *Config) LanguageDetectionEnabled() bool {
	return boolOr(c.DetectLanguage, true)
}

// BackupEnabled reports whether backups are written. Default false.
func (c *Config) BackupEnabled() bool {
	return boolOr(c.Backup.Enabled, false)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
