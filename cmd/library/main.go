package main

import (
	"errors"
	"flag"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/asgoh05/geuk-small-library/library/app"
	"github.com/asgoh05/geuk-small-library/library/config"
)

func main() {
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	opts := []config.Option{config.WithWriteTimeout(time.Minute)}
	if *debug {
		opts = append(opts, config.WithLogLevel(zapcore.DebugLevel))
	}

	app.Run(config.NewConfig(opts...))
}
