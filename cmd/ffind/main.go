package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/halvard/ffind/internal/app"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := app.Execute(version); err != nil {
		if !errors.Is(err, app.ErrNoMatch) {
			fmt.Fprintf(os.Stderr, "ffind: %v\n", err)
		}
		os.Exit(1)
	}
}
