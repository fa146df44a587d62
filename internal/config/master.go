package config

import "github.com/spf13/viper"

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	HttpPort       int
	BaseURL        string
	PostgresConfig *PostgresConfig
	RedisConfig    *RedisConfig
	SessionConfig  *SessionConfig
	GithubConfig   *GithubConfig
	JudgeConfig    *JudgeConfig
	GeminiConfig   *GeminiConfig
	NatsConfig     *NatsConfig
	ProblemConfig  *ProblemConfig
}

func NewSystemConfig(v *viper.Viper) *AppConfig {
	return &AppConfig{
		DebugMode:      v.GetBool("DEBUG_MODE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		HttpPort:       v.GetInt("HTTP_PORT"),
		BaseURL:        v.GetString("BASE_URL"),
		PostgresConfig: NewPostgresConfig(v),
		RedisConfig:    NewRedisConfig(v),
		SessionConfig:  NewSessionConfig(v),
		GithubConfig:   NewGithubConfig(v),
		JudgeConfig:    NewJudgeConfig(v),
		GeminiConfig:   NewGeminiConfig(v),
		NatsConfig:     NewNatsConfig(v),
		ProblemConfig:  NewProblemConfig(v),
	}
}
