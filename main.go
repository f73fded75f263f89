package main

import (
	"github.com/ethpandaops/stylus-profiler/cmd"
)

func main() {
	cmd.Execute()
}
