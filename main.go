// Package main is the entry point for the nowbar application.
package main

import (
	"github.com/nowbar-cli/nowbar/cmd"
	"github.com/nowbar-cli/nowbar/config"
	"github.com/nowbar-cli/nowbar/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
