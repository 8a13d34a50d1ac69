package main

import (
	"fmt"
	"os"

	"github.com/santiagomed/synapse/cli"
	"github.com/santiagomed/synapse/logger"
)

func main() {
	if err := logger.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	cli.Execute()
}
