package config

import (
	"time"

	"github.com/spf13/viper"
)

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

func NewSessionConfig(v *viper.Viper) *SessionConfig {
	return &SessionConfig{
		Secret:     v.GetString("SECRET_KEY"),
		TTL:        time.Duration(v.GetInt("SESSION_TTL_SEC")) * time.Second,
		CookieName: v.GetString("SESSION_COOKIE"),
		Secure:     v.GetBool("SESSION_SECURE"),
	}
}
