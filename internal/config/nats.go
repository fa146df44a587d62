package config

import "github.com/spf13/viper"

type NatsConfig struct {
	Url     string
	Subject string
}

func NewNatsConfig(v *viper.Viper) *NatsConfig {
	return &NatsConfig{
		Url:     v.GetString("NATS_URL"),
		Subject: v.GetString("NATS_SUBMISSION_SUBJECT"),
	}
}
