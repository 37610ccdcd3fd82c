package config

import "flag"

type Config struct {
	HistoryLimit          *int
	ReloadIntervalSeconds *int
	PingIntervalSeconds   *int
}

var CFG = &Config{
	HistoryLimit:          flag.Int("history-limit", 20, "Number of recent entry log rows pushed to gate displays after each judgement."),
	ReloadIntervalSeconds: flag.Int("reload-interval-seconds", 300, "Interval to rebuild the whole ticket cache from the remote catalog."),
	PingIntervalSeconds:   flag.Int("ping-interval-seconds", 30, "Send pings to websocket peer with this interval."),
}

func ProvideConfig() *Config {
	return CFG
}
