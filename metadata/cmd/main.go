package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/moviedex/moviedex/metadata/internal/controller/metadata"
	imdbgateway "github.com/moviedex/moviedex/metadata/internal/gateway/imdb/http"
	httphandler "github.com/moviedex/moviedex/metadata/internal/handler/http"
	"github.com/moviedex/moviedex/metadata/internal/ingester/kafka"
	"github.com/moviedex/moviedex/metadata/internal/repository/memory"
	"github.com/moviedex/moviedex/metadata/internal/repository/mysql"
	"github.com/moviedex/moviedex/pkg/discovery"
	"github.com/moviedex/moviedex/pkg/discovery/consul"
	"github.com/moviedex/moviedex/pkg/tracing"
)

const serviceName = "metadata"

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	f, err := os.Open("configs/default.yaml")
	if err != nil {
		logger.Fatal("Failed to open configuration", zap.Error(err))
	}
	var cfg config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		logger.Fatal("Failed to parse configuration", zap.Error(err))
	}
	f.Close()

	port := cfg.API.Port
	logger.Info("Starting the metadata service", zap.Int("port", port))

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address)
	if err != nil {
		logger.Fatal("Failed to init metadata service registry", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer, closer, err := tracing.New(serviceName, cfg.Jaeger.Host, cfg.Jaeger.Port, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Jaeger tracer", zap.Error(err))
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("localhost:%d", port)); err != nil {
		logger.Fatal("Failed to register service", zap.Error(err))
	}
	go func() {
		for {
			if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
				logger.Error("Failed to report healthy state", zap.Error(err))
			}
			time.Sleep(1 * time.Second)
		}
	}()
	defer registry.Deregister(ctx, instanceID, serviceName)

	scope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   serviceName,
		Reporter: tally.NullStatsReporter,
	}, time.Second)
	defer scopeCloser.Close()

	repo, err := mysql.New(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to init repository", zap.Error(err))
	}
	cache := memory.New()
	gateway := imdbgateway.New(cfg.IMDB.BaseURL, cfg.IMDB.APIKey)

	var ingester *kafka.Ingester
	if cfg.Kafka.Address != "" {
		ingester, err = kafka.NewIngester(cfg.Kafka.Address, cfg.Kafka.GroupID, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Fatal("Failed to init record ingester", zap.Error(err))
		}
	}

	ctrl := metadata.New(gateway, repo, cache, ingester, logger, scope)
	if ingester != nil {
		go func() {
			if err := ctrl.StartIngestion(ctx); err != nil {
				logger.Error("Record ingestion stopped", zap.Error(err))
			}
		}()
	}

	h := httphandler.New(ctrl, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: h.Router(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-sigChan
		logger.Info("Received signal, attempting graceful shutdown", zap.Any("signal", s))
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to serve HTTP server", zap.Error(err))
	}

	wg.Wait()
}
