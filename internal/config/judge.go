package config

import (
	"time"

	"github.com/spf13/viper"
)

type JudgeConfig struct {
	Interpreter string
	Timeout     time.Duration
	MaxParallel int
	OutputLimit int
	WorkDir     string

	// SweepInterval and SweepMaxAge drive the cleanup of workspaces left
	// behind by a crashed process. Sweeping only runs with a dedicated WorkDir.
	SweepInterval time.Duration
	SweepMaxAge   time.Duration
}

func NewJudgeConfig(v *viper.Viper) *JudgeConfig {
	maxParallel := v.GetInt("JUDGE_MAX_PARALLEL")
	if maxParallel < 1 {
		maxParallel = 1
	}
	timeoutSec := v.GetInt("JUDGE_TIMEOUT_SEC")
	if timeoutSec <= 0 {
		timeoutSec = 5
	}
	return &JudgeConfig{
		Interpreter: v.GetString("JUDGE_INTERPRETER"),
		Timeout:     time.Duration(timeoutSec) * time.Second,
		MaxParallel: maxParallel,
		OutputLimit: v.GetInt("JUDGE_OUTPUT_LIMIT_BYTES"),
		WorkDir:     v.GetString("JUDGE_WORK_DIR"),

		SweepInterval: time.Duration(v.GetInt("JUDGE_SWEEP_INTERVAL_SEC")) * time.Second,
		SweepMaxAge:   time.Duration(v.GetInt("JUDGE_SWEEP_MAX_AGE_SEC")) * time.Second,
	}
}
