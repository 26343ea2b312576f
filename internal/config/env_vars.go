package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAccessKeyFile() string
	GetRefreshKeyFile() string
	GetBootstrapEmail() string
	GetBootstrapPassword() string
}

type envVars struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AppName         string        `env:"APP_NAME" envDefault:"TaskHub Auth"`
	Env             string        `env:"ENV" envDefault:"DEV"`
	AccessKeyFile   string        `env:"ACCESS_KEY_FILE" envDefault:"./keys/access.key"`
	RefreshKeyFile  string        `env:"REFRESH_KEY_FILE" envDefault:"./keys/refresh.key"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"10m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`

	// Optional principal seeded at startup so a fresh deployment has
	// someone able to log in. Skipped when the password is unset.
	BootstrapEmail    string `env:"BOOTSTRAP_EMAIL" envDefault:"admin@taskhub.local"`
	BootstrapPassword string `env:"BOOTSTRAP_PASSWORD"`
}

type EnvVars struct {
	vars envVars
}

var _ EnvConfig = EnvVars{}

func parseEnv() (envVars, error) {
	vars, err := env.ParseAs[envVars]()
	if err != nil {
		return envVars{}, fmt.Errorf("config.parseEnv: %w", err)
	}
	return vars, nil
}

func (e EnvVars) GetPort() string {
	port := e.vars.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.vars.AppName
}

func (e EnvVars) GetEnv() string {
	return e.vars.Env
}

func (e EnvVars) GetAccessKeyFile() string {
	return e.vars.AccessKeyFile
}

func (e EnvVars) GetRefreshKeyFile() string {
	return e.vars.RefreshKeyFile
}

func (e EnvVars) GetBootstrapEmail() string {
	return e.vars.BootstrapEmail
}

func (e EnvVars) GetBootstrapPassword() string {
	return e.vars.BootstrapPassword
}
