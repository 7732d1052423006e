// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/swe-tools/swecfg/cmd/swecfg"

func main() {
	cmd.Execute()
}
