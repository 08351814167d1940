/*
Package main provides the command line tool to build and inspect Red-Black trees
with step by step rebalancing. Usage:

	redblack build 10 20 30
	redblack build --random 100 --seed 7 --color-only
	redblack run session.yaml --diff
	redblack verify --trials 1000
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
