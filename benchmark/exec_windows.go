//go:build windows
// +build windows

package benchmark

import "os"

func exitStatus(st *os.ProcessState) int {
	return st.ExitCode()
}
