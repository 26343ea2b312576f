package config

import "time"

type SecurityConfig interface {
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type Security struct {
	access  time.Duration
	refresh time.Duration
}

var _ SecurityConfig = Security{}

func (s Security) GetAccessTokenTTL() time.Duration {
	return s.access
}

func (s Security) GetRefreshTokenTTL() time.Duration {
	return s.refresh
}
