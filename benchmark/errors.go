package benchmark

import "github.com/pkg/errors"

// Error kinds surfaced by the engine. Call sites wrap these with context, so
// callers classify failures with errors.Is.
var (
	// ErrConfig marks invalid configuration: bad argument values, unreadable
	// input files, an empty command list. Surfaces before any run starts.
	ErrConfig = errors.New("invalid configuration")

	// ErrChildSpawn marks an OS-level failure to start a child process
	ErrChildSpawn = errors.New("cannot spawn child process")

	// ErrChildWait marks an OS-level failure to collect a child process
	ErrChildWait = errors.New("cannot wait for child process")

	// ErrExtractor marks a custom measurement extractor that exited non-zero
	// or produced output with no parseable number
	ErrExtractor = errors.New("custom measurement extraction failed")

	// ErrPrepare marks a prepare command that did not exit cleanly
	ErrPrepare = errors.New("prepare command failed")
)
