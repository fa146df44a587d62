package config

import (
	"time"

	"github.com/spf13/viper"
)

type RedisConfig struct {
	DB         int
	Url        string
	Password   string
	HistoryTTL time.Duration
}

func NewRedisConfig(v *viper.Viper) *RedisConfig {
	return &RedisConfig{
		DB:         v.GetInt("REDIS_DB"),
		Url:        v.GetString("REDIS_ADDR"),
		Password:   v.GetString("REDIS_PASSWORD"),
		HistoryTTL: time.Duration(v.GetInt("HISTORY_TTL_SEC")) * time.Second,
	}
}
