package main

import (
	"errors"
	"flag"
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/asgoh05/geuk-small-library/notifier/app"
	"github.com/asgoh05/geuk-small-library/notifier/config"
)

func main() {
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	var opts []config.Option
	if *debug {
		opts = append(opts, config.WithLogLevel(zapcore.DebugLevel))
	}

	app.Run(config.NewConfig(opts...))
}
