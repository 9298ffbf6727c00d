package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/asgoh05/geuk-small-library/pkg/auth"
	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/logger"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
	"github.com/asgoh05/geuk-small-library/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE" default:"30s"`
}

type Rental struct {
	LoanDays       int    `envconfig:"RENTAL_LOAN_DAYS" default:"14"`
	MaxLoanDays    int    `envconfig:"RENTAL_MAX_LOAN_DAYS" default:"21"`
	CooldownDays   int    `envconfig:"RENTAL_COOLDOWN_DAYS" default:"2"`
	MaxActiveLoans int    `envconfig:"RENTAL_MAX_ACTIVE_LOANS" default:"3"`
	TimeZone       string `envconfig:"RENTAL_TIMEZONE" default:"Asia/Seoul"`
}

// Notify selects where overdue notices go: log, smtp or kafka.
type Notify struct {
	Sink          string        `envconfig:"NOTIFY_SINK" default:"log"`
	FromName      string        `envconfig:"NOTIFY_FROM_NAME" default:"GEUK 도서관"`
	From          string        `envconfig:"NOTIFY_FROM"`
	TestRecipient string        `envconfig:"NOTIFY_TEST_RECIPIENT"`
	Interval      time.Duration `envconfig:"NOTIFY_SEND_INTERVAL" default:"1s"`
	Topic         string        `envconfig:"NOTIFY_KAFKA_TOPIC" default:"overdue-notices"`
	// BatchTimeout bounds the response of a paced notice batch. It overrides
	// the server write timeout for that route only.
	BatchTimeout time.Duration `envconfig:"NOTIFY_BATCH_TIMEOUT" default:"15m"`
}

type Validation struct {
	OrgDomains      []string `envconfig:"VALIDATE_ORG_DOMAINS"`
	RealNamePattern string   `envconfig:"VALIDATE_REALNAME_PATTERN"`
}

type Config struct {
	Server     HTTPServer
	Database   postgres.DB
	Kafka      kafka.Config
	Auth       auth.Config
	Rental     Rental
	Notify     Notify
	Validation Validation
	SMTP       mail.Config
	Breaker    cb.Config
	Log        logger.Log
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment. Options are applied on top of it.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		err := envconfig.Process("", &config)
		if err != nil {
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
	cfg.Database.Password = "***"
	cfg.Auth.JWTSecret = "***"
	cfg.SMTP.Password = "***"
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
