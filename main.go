package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/api"
	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logrus.Info("budget-tracker starting")

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	var publisher service.NotificationPublisher
	if envConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewPublisher(envConfig.AMQPURL, envConfig.AMQPExchange)
		if err != nil {
			logrus.WithError(err).Fatal("events.NewPublisher")
			return
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	svc := service.NewService(dbStorage, delegator, publisher)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Storage: dbStorage,
		Service: svc,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logrus.WithError(err).Error("api.Serve")
	}
}
