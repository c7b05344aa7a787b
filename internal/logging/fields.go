// Package logging wraps charmbracelet/log for mdtouch.
package logging

// Structured logging keys.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldConfig = "config"
	FieldSource = "source"

	// Block list fields.
	FieldBlockID  = "block_id"
	FieldBlocks   = "blocks"
	FieldInserted = "inserted"
	FieldBytes    = "bytes"
	FieldMode     = "mode"
	FieldSaves    = "saves"
	FieldBackup   = "backup"

	// Build info.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
