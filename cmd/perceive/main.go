// Package main is the perceive command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/rover/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
