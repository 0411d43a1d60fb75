// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import "os"

// terminatingSignal always reports false; Windows processes have no
// terminating signal.
func terminatingSignal(*os.ProcessState) (int, bool) {
	return 0, false
}
