package healthcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultCronTimeSeconds = 60

var logger zerolog.Logger = log.Logger

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// ConnectionChecker is anything whose broker or database connections can be
// probed, such as the queue set.
type ConnectionChecker interface {
	IsConnectionHealthy() error
}

// CheckerFunc adapts a plain function to ConnectionChecker.
type CheckerFunc func() error

func (f CheckerFunc) IsConnectionHealthy() error {
	return f()
}

var terminate = terminateService

func StartHealthCheckCron(ctx context.Context, checker ConnectionChecker, cronTime int) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime < 0 {
		return fmt.Errorf("invalid health check interval: %d", cronTime)
	}
	if cronTime == 0 {
		cronTime = defaultCronTimeSeconds
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		connectionHealthCheck(checker)
	})
	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func connectionHealthCheck(checker ConnectionChecker) {
	if err := checker.IsConnectionHealthy(); err != nil {
		logger.Error().Err(err).Msg("One or more connections are not healthy.")
		terminate()
	}
}

func terminateService() {
	logger.Error().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}
