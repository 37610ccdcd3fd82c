package config

import (
	"context"
	"os"
	"sync"
	"time"

	"aozora-resort/passport/passport-gate-server/infra"

	"github.com/go-redis/redis/v8"
	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

// kioskSettings is the redis-backed part of the runtime config. It's
// scanned into a local copy first so the shared state is only ever
// swapped under the lock.
type kioskSettings struct {
	// If false, display connections are turned away immediately. Used
	// when the gate is closed or the venue is in maintenance.
	IsKioskEnabled bool `redis:"isKioskEnabled"`

	// Free text shown on displays that are turned away.
	ClosedNotice string `redis:"closedNotice"`
}

// KioskConfig holds operational settings the venue staff can flip at
// run time through redis, without restarting the gate server. The
// poller goroutine writes and echo handlers read, so access goes
// through the locked accessors.
type KioskConfig struct {
	settings     kioskSettings
	settingsLock sync.Mutex

	redisClient *redis.Client
	httpClient  *req.Client
	logger      *zap.SugaredLogger
}

func ProvideKioskConfig(redisClient *redis.Client, httpClient *req.Client, loggerFactory *infra.LoggerFactory) *KioskConfig {
	return &KioskConfig{
		settings:    kioskSettings{IsKioskEnabled: true},
		redisClient: redisClient,
		httpClient:  httpClient,
		logger:      loggerFactory.Create("KioskConfig").Sugar(),
	}
}

const (
	// Update config with this interval.
	cfgUpdateInterval = 30 * time.Second

	// KioskConfig redis key.
	cfgRedisKey = "kiosk-config"
)

func (c *KioskConfig) IsKioskEnabled() bool {
	c.settingsLock.Lock()
	defer c.settingsLock.Unlock()

	return c.settings.IsKioskEnabled
}

func (c *KioskConfig) ClosedNotice() string {
	c.settingsLock.Lock()
	defer c.settingsLock.Unlock()

	return c.settings.ClosedNotice
}

func (c *KioskConfig) storeSettings(settings kioskSettings) {
	c.settingsLock.Lock()
	defer c.settingsLock.Unlock()

	c.settings = settings
}

func (c *KioskConfig) Run() {
	ticker := time.NewTicker(cfgUpdateInterval)
	for ; true; <-ticker.C {
		c.logger.Debugf("updating config")

		// Seed the hash on first run so operators find the field to flip.
		if _, err := c.redisClient.HSetNX(context.TODO(), cfgRedisKey, "isKioskEnabled", true).Result(); err != nil {
			c.logger.Errorf("err seeding config in redis %v", err)
			continue
		}

		settings := kioskSettings{}
		if err := c.redisClient.HGetAll(context.TODO(), cfgRedisKey).Scan(&settings); err != nil {
			c.logger.Errorf("err reading config from redis %v", err)
			continue
		}
		c.storeSettings(settings)

		c.logger.Infof("updated config isKioskEnabled[%v]", settings.IsKioskEnabled)

		// Probe the management server so reachability problems show up
		// in the log before a guest is standing at the gate.
		probeResult := &struct {
			Logs []struct {
				Id int64 `json:"id"`
			} `json:"logs"`
		}{}

		resp, err := c.httpClient.R().
			SetQueryParam("limit", "1").
			SetResult(probeResult).
			Get(os.Getenv("REMOTE_SERVER_HOST") + "/api/history")

		if err != nil {
			c.logger.Warnf("management server unreachable %v", err)
			continue
		}

		if resp.IsError() {
			c.logger.Warnf("management server probe failed with status[%v]", resp.Status)
			continue
		}

		c.logger.Debugf("management server reachable")
	}
}
