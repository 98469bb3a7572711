// Copyright © 2025 The pyvet authors

package main

import "github.com/luthersystems/pyvet/cmd"

func main() {
	cmd.Execute()
}
