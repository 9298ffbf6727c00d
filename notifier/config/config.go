package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/logger"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
)

type Config struct {
	Topic   string `envconfig:"NOTIFY_KAFKA_TOPIC" default:"overdue-notices"`
	Kafka   kafka.Config
	SMTP    mail.Config
	Breaker cb.Config
	Log     logger.Log
}

type Option func(cfg *Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(cfg *Config) {
		cfg.Log.LogLevel = level
	}
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment. Options are applied on top of it.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	cfg.SMTP.Password = "***"
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
