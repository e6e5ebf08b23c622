// Package daemon wires the orchestration layer into a long-running process:
// a JetStream subscriber feeding the gateway, a Temporal backed engine and
// the HTTP read API for task history.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/gateway"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history/mem"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/history/pg"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/http/server"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/orchestration/temporal"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/refdata"
	"github.com/hmcts/cpp-context-businessprocesses-sub000/subscriber"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// Run starts the daemon and blocks until a SIGINT or SIGTERM is received.
func Run(config *Config) int {
	logger, err := newLogger(config.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	e, err := temporal.New(config.Temporal.Target, func(o *temporal.Options) {
		o.Namespace = config.Temporal.Namespace
		o.TaskQueue = config.Temporal.TaskQueue
	})
	if err != nil {
		logger.Error("failed to create engine", zap.Error(err))
		return 1
	}
	defer e.Shutdown()

	store, storeShutdown, err := newStore(config.Database)
	if err != nil {
		logger.Error("failed to create task history store", zap.Error(err))
		return 1
	}
	defer storeShutdown()

	tracker, err := history.NewTracker(store, logger)
	if err != nil {
		logger.Error("failed to create task history tracker", zap.Error(err))
		return 1
	}

	calendar, err := refdata.NewStaticCalendar(config.RefData.Holidays)
	if err != nil {
		logger.Error("failed to create holiday calendar", zap.Error(err))
		return 1
	}

	resolver, err := refdata.NewResolver(refdata.NewStaticDirectory(config.RefData.TaskTypes), calendar, logger)
	if err != nil {
		logger.Error("failed to create reference data resolver", zap.Error(err))
		return 1
	}

	g, err := gateway.New(e, gateway.NewStaticFlags(config.Features), resolver, logger, func(o *gateway.Options) {
		o.Identity = orchestration.Identity{Id: config.Identity.Id, Name: config.Identity.Name}
	})
	if err != nil {
		logger.Error("failed to create gateway", zap.Error(err))
		return 1
	}

	httpServer, err := server.New(tracker, logger, func(o *server.Options) {
		o.BindAddress = config.Http.BindAddress
		o.ReadTimeout = config.Http.ReadTimeout
		o.WriteTimeout = config.Http.WriteTimeout
		o.BasicAuthUsername = config.Http.BasicAuthUsername
		o.BasicAuthPassword = config.Http.BasicAuthPassword
	})
	if err != nil {
		logger.Error("failed to create HTTP server", zap.Error(err))
		return 1
	}

	nc, err := nats.Connect(config.Nats.Url, nats.Name(config.Nats.ConsumerName))
	if err != nil {
		logger.Error("failed to connect to NATS", zap.Error(err))
		return 1
	}
	defer nc.Drain()

	js, err := jetstream.New(nc)
	if err != nil {
		logger.Error("failed to create JetStream context", zap.Error(err))
		return 1
	}

	sub, err := subscriber.New(js, g, logger, func(o *subscriber.Options) {
		o.StreamName = config.Nats.StreamName
		o.ConsumerName = config.Nats.ConsumerName
		o.AckWait = config.Nats.AckWait
		o.MaxDeliver = config.Nats.MaxDeliver
	})
	if err != nil {
		logger.Error("failed to create subscriber", zap.Error(err))
		return 1
	}

	lifecycleSub, err := subscriber.NewLifecycleSubscriber(js, tracker, logger, func(o *subscriber.LifecycleOptions) {
		o.StreamName = config.Nats.StreamName
		o.ConsumerName = config.Nats.LifecycleConsumerName
		o.Identity = orchestration.Identity{Id: config.Identity.Id, Name: config.Identity.Name}
	})
	if err != nil {
		logger.Error("failed to create lifecycle subscriber", zap.Error(err))
		return 1
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	if err := sub.Start(startCtx); err != nil {
		logger.Error("failed to start subscriber", zap.Error(err))
		return 1
	}

	if err := lifecycleSub.Start(startCtx); err != nil {
		logger.Error("failed to start lifecycle subscriber", zap.Error(err))
		return 1
	}

	httpServer.ListenAndServe()

	logger.Info("daemon started")

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

	<-signalC

	sub.Shutdown()
	lifecycleSub.Shutdown()
	httpServer.Shutdown()

	return 0
}

func newLogger(config LoggerConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if config.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	if config.Level != "" {
		level, err := zap.ParseAtomicLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level: %w", err)
		}
		zapConfig.Level = level
	}

	return zapConfig.Build()
}

func newStore(config DatabaseConfig) (history.Store, func(), error) {
	if config.Url == "" {
		return mem.New(), func() {}, nil
	}

	store, err := pg.New(config.Url)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Shutdown, nil
}
