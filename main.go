// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package main

import "github.com/geoffholden/dhtwx/cmd"

func main() {
	cmd.Execute()
}
