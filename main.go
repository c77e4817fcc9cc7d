package main

import (
	"fmt"
	"os"

	"github.com/go-i2p/go-rtshim/lib/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rtshim:", err)
		os.Exit(1)
	}
}
