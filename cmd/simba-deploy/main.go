package main

import (
	"os"

	"github.com/simbachain/libsimba-deploy/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
