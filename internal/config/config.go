package config

import (
	"github.com/caarlos0/env/v11"
)

const (
	DefaultAPIURL = "https://api.commish.app/api"
	DefaultHubURL = "https://api.commish.app/hubs/dashboard"
)

type Config struct {
	APIURL      string `env:"API_URL" envDefault:"https://api.commish.app/api"`
	HubURL      string `env:"HUB_URL" envDefault:"https://api.commish.app/hubs/dashboard"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`
	RedisURL    string `env:"REDIS_URL"`
	// AccessToken seeds the consultant slot of an --ephemeral session.
	AccessToken string `env:"ACCESS_TOKEN"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
