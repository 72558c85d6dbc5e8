// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/wiktersproj/wikters/internal/cli"
	"github.com/wiktersproj/wikters/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wikters:", err)
		os.Exit(1)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wikters:", err)
		os.Exit(1)
	}
}
