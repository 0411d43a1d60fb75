// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/runpick/cmd/runpick"

func main() {
	cmd.Execute()
}
