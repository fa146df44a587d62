package config

import "github.com/spf13/viper"

type ProblemSource string

const (
	ProblemSourceFile     ProblemSource = "file"
	ProblemSourcePostgres ProblemSource = "postgres"
)

type ProblemConfig struct {
	Source   ProblemSource
	FilePath string
}

func NewProblemConfig(v *viper.Viper) *ProblemConfig {
	return &ProblemConfig{
		Source:   ProblemSource(v.GetString("PROBLEM_SOURCE")),
		FilePath: v.GetString("PROBLEM_FILE"),
	}
}
