package main

import (
	"os"

	"github.com/linkdeck/linkdeck/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
