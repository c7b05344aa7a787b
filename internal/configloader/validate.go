package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdtouch/internal/logging"
	"github.com/yaklabco/mdtouch/pkg/config"
)

// ErrInvalidConfig marks every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError is one invalid setting.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

// Validate checks enum-like settings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if !logging.ValidLevel(cfg.LogLevel) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	if strings.ContainsAny(cfg.Backup.Suffix, `/\`) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backup.suffix",
			Value:   cfg.Backup.Suffix,
			Message: "backup suffix must not contain a path separator",
		})
	}

	if ext := cfg.Export.WikiExtension; ext != "" && !strings.HasPrefix(ext, ".") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "export.wiki_extension",
			Value:   ext,
			Message: fmt.Sprintf("extension %q does not start with a dot", ext),
		})
	}

	return result
}

// ValidateWithFile validates cfg and tags findings with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
