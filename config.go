package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// -- globals

var API_URL = "https://api.github.com"

var STATS_URL = "https://valkyrieserver.azurewebsites.net/stats/scenarios_stats.json"

// knobs for talking to the outside world.
// passed by value into every component so individual calls cannot affect each other.
type Config struct {
	APIURL     string        // root of the structured hosting API
	StatsURL   string        // scenario statistics document
	Retries    int           // attempts per network call. default 3.
	RetryDelay time.Duration // fixed pause between attempts. default 2s.
	Timeout    time.Duration // per-request deadline. default 20s.
	Token      string        // optional hosting API token. empty is fine.
	Log        *slog.Logger
	Client     *http.Client
}

func default_config() Config {
	return Config{
		APIURL:     API_URL,
		StatsURL:   STATS_URL,
		Retries:    3,
		RetryDelay: 2 * time.Second,
		Timeout:    20 * time.Second,
		Token:      os.Getenv("GITHUB_TOKEN"),
		Log:        slog.Default(),
		Client:     &http.Client{},
	}
}
