package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/cmd/staking-ledger-service/cli"
	"github.com/babylonchain/staking-ledger-service/cmd/staking-ledger-service/scripts"
	"github.com/babylonchain/staking-ledger-service/internal/api"
	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/db/model"
	"github.com/babylonchain/staking-ledger-service/internal/observability/healthcheck"
	"github.com/babylonchain/staking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger-service/internal/queue"
	"github.com/babylonchain/staking-ledger-service/internal/services"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx := context.Background()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	// initialize metrics with the metrics address from config
	if !cfg.Metrics.Disabled {
		metrics.Init(cfg.Metrics.Addr())
	}

	if cfg.Db.Type != config.DbTypeMemory {
		err = model.Setup(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("error while setting up staking db model")
		}
	}
	services, err := services.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking services layer")
	}
	if err := services.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while bootstrapping the ledger")
	}

	var queues *queue.Queues
	if !cfg.Queue.Disabled {
		queues = queue.New(cfg.Queue, services)
	}

	// Check if the replay flag is set
	if cli.GetReplayFlag() {
		if queues == nil {
			log.Fatal().Msg("replay requires the queue to be enabled")
		}
		log.Info().Msg("Replay flag is set. Starting replay of unprocessable messages.")
		err := scripts.ReplayUnprocessableMessages(ctx, queues, services.UnprocessableMessages())
		if err != nil {
			log.Fatal().Err(err).Msg("error while replaying unprocessable messages")
		}
		return
	}

	if queues != nil {
		// Start the command queue processing
		queues.StartReceivingMessages()
		defer queues.StopReceivingMessages()
	}

	checker := healthcheck.CheckerFunc(func() error {
		var errs []error
		if err := services.DoHealthCheck(ctx); err != nil {
			errs = append(errs, err)
		}
		if queues != nil {
			errs = append(errs, queues.IsConnectionHealthy())
		}
		return errors.Join(errs...)
	})
	if err := healthcheck.StartHealthCheckCron(ctx, checker, cfg.Server.HealthCheckInterval); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking api service")
	}
	if err = apiServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("error while starting staking api service")
	}
}
