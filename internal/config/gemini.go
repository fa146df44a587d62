package config

import "github.com/spf13/viper"

type GeminiConfig struct {
	ApiKey  string
	Model   string
	BaseURL string
}

func NewGeminiConfig(v *viper.Viper) *GeminiConfig {
	return &GeminiConfig{
		ApiKey:  v.GetString("GEMINI_API_KEY"),
		Model:   v.GetString("GEMINI_MODEL"),
		BaseURL: v.GetString("GEMINI_API_URL"),
	}
}
