package main

import (
	"github.com/harnesslab/tally/pkg/cli"
)

func main() {
	cli.Execute()
}
