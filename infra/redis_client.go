package infra

import (
	"context"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// ProvideRedisClient connects to the redis instance carrying the
// kiosk's runtime settings hash. REDIS_HOST points at the venue's
// shared instance and REDIS_DB isolates the gate server from the other
// apps on it; both come from the environment so one binary serves
// every gate.
func ProvideRedisClient(loggerFactory *LoggerFactory) (*redis.Client, error) {
	logger := loggerFactory.Create("RedisClient").Sugar()
	redisDb, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		logger.Errorf("invalid redis db %v", err)
		return nil, err
	}

	return redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST"),
		DB:   redisDb,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			logger.Infof("redis connected to host[%v] db[%v]", os.Getenv("REDIS_HOST"), redisDb)
			return nil
		},
	}), nil
}
