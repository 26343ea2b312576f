package config

type Config interface {
	EnvConfig
	SecurityConfig
}

type mainConfig struct {
	EnvVars
	Security
}

// New parses the environment once and returns the composed configuration.
func New() (Config, error) {
	vars, err := parseEnv()
	if err != nil {
		return nil, err
	}
	return mainConfig{
		EnvVars:  EnvVars{vars: vars},
		Security: Security{access: vars.AccessTokenTTL, refresh: vars.RefreshTokenTTL},
	}, nil
}
