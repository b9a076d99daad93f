package main

import (
	"fmt"
	"os"

	"socialgram/internal/mediactl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
