//go:build darwin || linux
// +build darwin linux

package benchmark

import (
	"golang.org/x/sys/unix"
)

// AdjustFilenoUlimit raises the file descriptor limit so that capture files
// of many concurrent benchmarks do not exhaust the default soft limit
func (e *Engine) AdjustFilenoUlimit() int {
	var rLimit unix.Rlimit
	fileno := uint64(1048576)

	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rLimit); err != nil {
		e.log.Warn("error getting rlimit: %v", err)
		return -1
	}

	rLimit.Max = fileno
	rLimit.Cur = fileno

	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &rLimit); err != nil {
		e.log.Debug("error setting rlimit: %v", err)
		return -1
	}

	e.log.Debug("changed file descriptor limit to %v", rLimit.Cur)
	return 0
}
