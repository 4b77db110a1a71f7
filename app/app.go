package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cancunbooking/booking-service/config"
	"github.com/cancunbooking/booking-service/internal/handler"
	"github.com/cancunbooking/booking-service/internal/repository"
	"github.com/cancunbooking/booking-service/internal/server"
	"github.com/cancunbooking/booking-service/internal/service"
	"github.com/cancunbooking/booking-service/migrations"
	"github.com/cancunbooking/booking-service/pkg/kafka"
	"github.com/cancunbooking/booking-service/pkg/logger"
	"github.com/cancunbooking/booking-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "booking")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}
	svc := service.NewService(repo, log, service.NewClock())

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, events disabled", zap.Error(err))
		producer = nil
	}
	h := handler.New(svc, handler.NewEnqueuer(producer), log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case termSig := <-sig:
			log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		case <-ctx.Done():
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}

	db.Close()
	if producer != nil {
		_ = producer.Close()
	}
	log.Info("Graceful shutdown finished")
	return nil
}
