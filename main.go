package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"marketgate/config"
	"marketgate/internal/auth"
	"marketgate/internal/channel"
	"marketgate/internal/gateway"
	"marketgate/internal/market"
	"marketgate/internal/metrics"
	"marketgate/internal/normalizer"
	"marketgate/internal/pipeline"
	"marketgate/internal/rate"
	"marketgate/logger"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service":     cfg.Gateway.Name,
		"version":     cfg.Gateway.Version,
		"environment": config.AppEnvironment(),
	}).Info("starting marketgate")

	if cfg.Metrics.Enabled {
		metrics.Init(cfg.Metrics.Listen)
	}
	if cfg.Metrics.CloudWatch.Enabled {
		logger.InitCloudWatch(cfg.Metrics.CloudWatch.Region, cfg.Metrics.CloudWatch.Namespace)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := gateway.New(rate.NewGuard(cfg.RateGuard.RequestsPerSecond, cfg.RateGuard.Burst))

	bases := normalizer.Bases{
		Volume24h: cfg.Normalizer.Volume24hBase,
		Volume1m:  cfg.Normalizer.Volume1mBase,
	}

	wg := &sync.WaitGroup{}
	feeds := make([]*channel.Feed, 0, len(cfg.Exchanges))
	for _, ex := range cfg.Exchanges {
		// Construct the authenticator up front so malformed credentials
		// abort startup instead of the first signed request.
		a, err := auth.New(auth.Protocol(ex.Protocol), auth.Credentials{
			Key:        ex.APIKey,
			Secret:     ex.APISecret,
			Passphrase: ex.Passphrase,
		})
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"exchange": ex.Name,
				"protocol": ex.Protocol,
			}).Error("failed to construct authenticator")
			if config.IsProductionLike(config.AppEnvironment()) {
				os.Exit(1)
			}
			a = nil
		}

		set := &market.Tickers{
			Exchange: ex.Name,
			Rates:    market.CrossRates{NativeFiat: cfg.Normalizer.NativeFiat},
		}
		feed := channel.NewFeed(cfg.Channels.SnapshotBuffer, cfg.Channels.StatusBuffer)
		feeds = append(feeds, feed)

		gw.Register(&gateway.Exchange{Name: ex.Name, Auth: a, Feed: feed})

		runner := pipeline.NewRunner(set, feed, normalizer.New(bases))
		wg.Add(1)
		go runner.Run(ctx, wg)
	}

	log.WithFields(logger.Fields{
		"exchanges": len(cfg.Exchanges),
	}).Info("marketgate started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received")
	cancel()
	for _, feed := range feeds {
		feed.Close()
	}
	wg.Wait()
	log.Info("marketgate stopped")
}
