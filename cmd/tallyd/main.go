package main

import (
	"log"

	"github.com/harnesslab/tally/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
