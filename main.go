// SPDX-License-Identifier: MPL-2.0

package main

import cmd "hostfacts-cli/cmd/hostfacts"

func main() {
	cmd.Execute()
}
