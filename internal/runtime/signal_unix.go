// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"os"
	"syscall"
)

// terminatingSignal returns the signal that killed the process, if any.
func terminatingSignal(state *os.ProcessState) (int, bool) {
	if state == nil {
		return 0, false
	}
	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return int(status.Signal()), true
}
