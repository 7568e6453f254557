package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ds124wfegd/WB_L3/webpconverter/config"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/kafka"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := kafka.StartEventConsumer(ctx,
		strings.Split(config.GetEnv("KAFKA_BROKERS", "localhost:9094"), ","),
		config.GetEnv("KAFKA_TOPIC", "image-conversions"),
		config.GetEnv("KAFKA_GROUP_ID", "image-conversion-log"),
	)
	if err != nil {
		logrus.Fatalf("event consumer stopped: %s", err.Error())
	}
}
