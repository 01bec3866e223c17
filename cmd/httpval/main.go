// Command httpval parses and inspects HTTP media types, Accept headers,
// request targets and header blocks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/shapestone/shape-httpval/internal/cli"
)

func main() {
	cmd, err := cli.NewCommand(viper.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
