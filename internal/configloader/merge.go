package configloader

import "github.com/yaklabco/mdtouch/pkg/config"

// merge overlays override onto base. Nil pointers and empty strings in
// override leave base untouched, so an explicit false still wins.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	result := base.Clone()
	if override == nil {
		return result
	}

	if override.WikiLinks != nil {
		result.WikiLinks = config.Bool(*override.WikiLinks)
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = config.Bool(*override.DetectLanguage)
	}
	if override.Backup.Enabled != nil {
		result.Backup.Enabled = config.Bool(*override.Backup.Enabled)
	}
	if override.Backup.Suffix != "" {
		result.Backup.Suffix = override.Backup.Suffix
	}
	if override.Export.WikiBaseURL != "" {
		result.Export.WikiBaseURL = override.Export.WikiBaseURL
	}
	if override.Export.WikiExtension != "" {
		result.Export.WikiExtension = override.Export.WikiExtension
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	return result
}

// MergeAll merges configs in order; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
