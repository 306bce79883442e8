// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
