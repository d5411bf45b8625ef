package main

import (
	"os"

	"github.com/wanplusss/momento/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
