//go:build tinygo && baremetal

package main

import (
	"ember/app"
	"ember/config"
	"ember/hal"
)

func main() {
	app.Run(hal.New(), app.Options{Config: config.Default()})
}
