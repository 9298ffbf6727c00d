package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/asgoh05/geuk-small-library/library/config"
	"github.com/asgoh05/geuk-small-library/library/internal/handler"
	"github.com/asgoh05/geuk-small-library/library/internal/notify"
	"github.com/asgoh05/geuk-small-library/library/internal/overdue"
	"github.com/asgoh05/geuk-small-library/library/internal/rental"
	"github.com/asgoh05/geuk-small-library/library/internal/repository"
	"github.com/asgoh05/geuk-small-library/library/internal/server"
	"github.com/asgoh05/geuk-small-library/library/internal/service"
	"github.com/asgoh05/geuk-small-library/library/migrations"
	cb "github.com/asgoh05/geuk-small-library/pkg/circuit_breaker"
	"github.com/asgoh05/geuk-small-library/pkg/kafka"
	"github.com/asgoh05/geuk-small-library/pkg/logger"
	"github.com/asgoh05/geuk-small-library/pkg/mail"
	"github.com/asgoh05/geuk-small-library/pkg/postgres"
	"github.com/asgoh05/geuk-small-library/pkg/validate"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	loc, err := time.LoadLocation(cfg.Rental.TimeZone)
	if err != nil {
		log.Fatal("time zone", zap.String("tz", cfg.Rental.TimeZone), zap.Error(err))
	}
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	sink, closeSink, err := newSink(cfg, log)
	if err != nil {
		log.Fatal("notification sink", zap.String("sink", cfg.Notify.Sink), zap.Error(err))
	}
	var limiter *rate.Limiter
	if cfg.Notify.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Notify.Interval), 1)
	}
	svc := service.NewService(repo, log,
		service.WithEngine(rental.Engine{
			LoanDays:     cfg.Rental.LoanDays,
			MaxLoanDays:  cfg.Rental.MaxLoanDays,
			CooldownDays: cfg.Rental.CooldownDays,
		}),
		service.WithMaxActiveLoans(cfg.Rental.MaxActiveLoans),
		service.WithLocation(loc),
		service.WithNotifier(overdue.NewSender(sink, limiter, log), cfg.Notify.Sink, overdue.NoticeOptions{
			FromName:      cfg.Notify.FromName,
			From:          cfg.Notify.From,
			TestRecipient: cfg.Notify.TestRecipient,
		}),
	)

	validator, err := newValidator(cfg.Validation)
	if err != nil {
		log.Fatal("validator", zap.Error(err))
	}
	h := handler.New(svc, log, handler.WithNoticeTimeout(cfg.Notify.BatchTimeout))
	srv := server.NewServer(cfg.Server, h.NewRouter(cfg.Auth, validator))
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	closeSink()
	db.Close()
	log.Info("Graceful shutdown finished")
}

func newSink(cfg config.Config, log *zap.Logger) (overdue.Sink, func(), error) {
	switch cfg.Notify.Sink {
	case notify.SinkLog, "":
		return notify.NewLogSink(log), func() {}, nil
	case notify.SinkSMTP:
		if cfg.Notify.From == "" {
			return nil, nil, errors.New("NOTIFY_FROM is required for smtp")
		}
		return notify.NewMailSink(mail.NewSMTPSender(cfg.SMTP, cb.New(cfg.Breaker))), func() {}, nil
	case notify.SinkKafka:
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return nil, nil, errors.Wrap(err, "kafka.NewProducer")
		}
		closeFn := func() {
			if err := producer.Close(); err != nil {
				log.Warn("producer.Close", zap.Error(err))
			}
		}
		return notify.NewKafkaSink(kafka.NewEnqueuer(producer), cfg.Notify.Topic), closeFn, nil
	default:
		return nil, nil, errors.Errorf("unknown sink %q", cfg.Notify.Sink)
	}
}

func newValidator(cfg config.Validation) (*validate.CustomValidator, error) {
	opts := []validate.Option{validate.WithOrgDomains(cfg.OrgDomains...)}
	if cfg.RealNamePattern != "" {
		re, err := regexp.Compile(cfg.RealNamePattern)
		if err != nil {
			return nil, errors.Wrap(err, "VALIDATE_REALNAME_PATTERN")
		}
		opts = append(opts, validate.WithRealNamePattern(re))
	}
	return validate.NewCustomValidator(opts...), nil
}
