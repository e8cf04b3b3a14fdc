package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		ID   string `yaml:"id"`
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"bank"`
	Quiz Quiz `yaml:"quiz"`
}

// Quiz holds the selection and scoring policy for an attempt.
type Quiz struct {
	TargetSize            int        `yaml:"target_size"`
	TimeLimit             string     `yaml:"time_limit"`
	CriticalFailThreshold int        `yaml:"critical_fail_threshold"`
	Thresholds            Thresholds `yaml:"thresholds"`
	ShuffleOptions        *bool      `yaml:"shuffle_options"`
	ShuffleSeed           *int64     `yaml:"shuffle_seed"`
}

// Thresholds are inclusive lower score bounds per tier.
type Thresholds struct {
	Platinum float64 `yaml:"platinum"`
	Gold     float64 `yaml:"gold"`
	Silver   float64 `yaml:"silver"`
}

// Defaults matching the published assessment policy.
const (
	DefaultTargetSize            = 50
	DefaultTimeLimit             = time.Hour
	DefaultCriticalFailThreshold = 2
)

func DefaultThresholds() Thresholds {
	return Thresholds{Platinum: 95, Gold: 80, Silver: 60}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Quiz.validate()
}

func (q Quiz) validate() error {
	if q.TargetSize < 0 {
		return fmt.Errorf("quiz.target_size must be positive, got %d", q.TargetSize)
	}
	if q.CriticalFailThreshold < 0 {
		return fmt.Errorf("quiz.critical_fail_threshold must not be negative, got %d", q.CriticalFailThreshold)
	}
	return nil
}

// TargetSizeOrDefault returns the configured quiz size or the default of 50.
func (q Quiz) TargetSizeOrDefault() int {
	if q.TargetSize > 0 {
		return q.TargetSize
	}
	return DefaultTargetSize
}

// TimeLimitOrDefault returns the configured attempt duration or one hour.
func (q Quiz) TimeLimitOrDefault() time.Duration {
	return TTLDuration(q.TimeLimit, DefaultTimeLimit)
}

// CriticalFailThresholdOrDefault returns the auto-fail threshold or 2.
func (q Quiz) CriticalFailThresholdOrDefault() int {
	if q.CriticalFailThreshold > 0 {
		return q.CriticalFailThreshold
	}
	return DefaultCriticalFailThreshold
}

// ThresholdsOrDefault returns configured tier bounds, falling back to
// 95/80/60 when the block is absent.
func (q Quiz) ThresholdsOrDefault() Thresholds {
	if q.Thresholds == (Thresholds{}) {
		return DefaultThresholds()
	}
	return q.Thresholds
}

// ShuffleEnabled defaults to true when unset.
func (q Quiz) ShuffleEnabled() bool {
	if q.ShuffleOptions == nil {
		return true
	}
	return *q.ShuffleOptions
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
