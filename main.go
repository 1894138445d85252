package main

import (
	"os"

	"github.com/parallelbenchmark/build-tools/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
