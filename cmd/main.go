package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/avinashh10x/invoiceGen/internal/api"
	"github.com/avinashh10x/invoiceGen/internal/clients/mailer"
	"github.com/avinashh10x/invoiceGen/internal/repository"
	"github.com/avinashh10x/invoiceGen/internal/service"
	"github.com/avinashh10x/invoiceGen/pkg/broker"
	"github.com/avinashh10x/invoiceGen/pkg/config"
	"github.com/avinashh10x/invoiceGen/pkg/job"
	"github.com/avinashh10x/invoiceGen/pkg/logger"
	"github.com/avinashh10x/invoiceGen/pkg/postgres"
)

const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	mailClient := mailer.New(cfg.Mailer)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.InvoicePaidTopic)
	defer producer.Close()

	s := service.New(cfg, repo, mailClient, producer)

	{
		job.NewService().
			TryRegisterJob(cfg.Jobs.OverdueEnabled, "mark overdue invoices", cfg.Jobs.OverdueInterval, s.MarkOverdueInvoices).
			Start(ctx)
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(s)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err = server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
