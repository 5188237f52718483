package main

import (
	"log"
	"os"

	"github.com/avstrong/hotel/internal/app"
	"github.com/avstrong/hotel/internal/logger"
)

// Failures are logged, never turned into a non-zero exit status.
func main() {
	l := logger.New(log.Default())

	if err := app.Run(app.DefaultConf(l, os.Stdin, os.Stdout)); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())
	}
}
