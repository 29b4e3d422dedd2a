//go:build cli
// +build cli

package main

import (
	_ "brickstock.GO/custom"

	"brickstock.GO/cmd"
	"brickstock.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
