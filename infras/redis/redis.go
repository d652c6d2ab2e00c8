package redis

import (
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"roomstack/config"
)

const pingTimeout = 5 * time.Second

// New connects to the primary redis node, retrying like the postgres pools do.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	maxRetry := max(config.Cache.Redis.MaxRetry, 1)

	for attempt := range maxRetry {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err := client.Ping(ctx).Err()

		cancel()

		if err == nil {
			log.Info().
				Int("db", primary.DB).
				Str("host", primary.Host).
				Str("port", primary.Port).
				Msg("Connected to Redis")

			return client
		}

		log.Error().
			Err(err).
			Str("host", primary.Host).
			Int("attempt", attempt+1).
			Msg("Failed connecting to Redis, retrying")

		time.Sleep(time.Duration(config.Cache.Redis.RetryWaitTime) * time.Second)
	}

	log.Fatal().Msg("Failed to connect to Redis")

	return nil
}
