package cli

import (
	"errors"

	"github.com/yaklabco/mdtouch/internal/configloader"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

// Exit codes for mdtouch.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates the command failed.
	ExitError = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 64

	// ExitModified indicates the file changed on disk since it was read.
	ExitModified = 75
)

// ErrUsage marks errors caused by bad arguments.
var ErrUsage = errors.New("invalid usage")

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitUsage
	case errors.Is(err, fsutil.ErrModified):
		return ExitModified
	default:
		return ExitError
	}
}
