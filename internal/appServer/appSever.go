// launching the server, workspace and kafka events
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/WB_L3/webpconverter/config"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/database"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/archiver"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/service"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires the conversion pipeline behind the gin router.
func NewHandler(cfg *config.Config, producer kafka.Producer) (http.Handler, error) {
	imgProcessor := processor.NewImageProcessor(cfg.App.Quality)
	zipArchiver := archiver.NewZipArchiver(cfg.App.CompressionLevel)
	convService := service.NewConversionService(service.Options{
		WorkDir:           cfg.App.WorkDir,
		MaxFiles:          cfg.App.MaxFiles,
		MaxConcurrentJobs: cfg.App.MaxConcurrentJobs,
		ArchiveName:       cfg.App.ArchiveName,
		EventsTopic:       cfg.Kafka.Topic,
	}, imgProcessor, zipArchiver, producer)
	convHandler := transport.NewConversionHandler(convService, cfg.Server.MaxBodyBytes)

	return transport.InitRoutes(convHandler)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	if err := database.SweepWorkspaces(cfg.App.WorkDir); err != nil {
		logrus.Fatalf("failed to prepare work dir %s: %s", cfg.App.WorkDir, err.Error())
	}

	var producer kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		logrus.Info("Kafka disabled, conversion events are only logged")
		producer = kafka.NewMockProducer()
	}
	defer producer.Close()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := NewHandler(cfg, producer)
	if err != nil {
		logrus.Fatalf("failed to build routes: %s", err.Error())
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Printf("App Started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
