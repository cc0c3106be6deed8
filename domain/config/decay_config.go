package config

import (
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DecayConfig unions both DecayConfig shapes observed in the corpus this
// system was distilled from: every knob named by either shape is exposed
// here so no implementer has to choose between them.
type DecayConfig struct {
	BaseLambda             float64       `yaml:"base_lambda"`
	ReinforcementBoost     float64       `yaml:"reinforcement_boost"`
	CitationWeight         float64       `yaml:"citation_weight"`
	FoundationalBonus      float64       `yaml:"foundational_bonus"`
	ConsolidationThreshold float64       `yaml:"consolidation_threshold"`
	ForgettingThreshold    float64       `yaml:"forgetting_threshold"`
	TickInterval           time.Duration `yaml:"tick_interval"`
}

// DefaultDecayConfig returns the engine's default tunables.
func DefaultDecayConfig() DecayConfig {
	return DecayConfig{
		BaseLambda:             BaseLambdaFor30DayHalfLife(),
		ReinforcementBoost:     0.3,
		CitationWeight:         0.1,
		FoundationalBonus:      0.5,
		ConsolidationThreshold: 0.7,
		ForgettingThreshold:    0.1,
		TickInterval:           time.Hour,
	}
}

// BaseLambdaFor30DayHalfLife is ln(2) / 30 days expressed as a
// per-second decay rate.
func BaseLambdaFor30DayHalfLife() float64 {
	thirtyDays := 30 * 24 * time.Hour
	return math.Ln2 / thirtyDays.Seconds()
}

// LoadDecayConfigYAML reads a YAML file shaped like DecayConfig, falling
// back to defaults for any zero-valued field left unset by the document.
func LoadDecayConfigYAML(path string) (DecayConfig, error) {
	cfg := DefaultDecayConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDecayConfigEnv applies DECAY_* environment overrides on top of
// defaults.
func LoadDecayConfigEnv() DecayConfig {
	cfg := DefaultDecayConfig()
	cfg.BaseLambda = getEnvFloat("DECAY_BASE_LAMBDA", cfg.BaseLambda)
	cfg.ReinforcementBoost = getEnvFloat("DECAY_REINFORCEMENT_BOOST", cfg.ReinforcementBoost)
	cfg.CitationWeight = getEnvFloat("DECAY_CITATION_WEIGHT", cfg.CitationWeight)
	cfg.FoundationalBonus = getEnvFloat("DECAY_FOUNDATIONAL_BONUS", cfg.FoundationalBonus)
	cfg.ConsolidationThreshold = getEnvFloat("DECAY_CONSOLIDATION_THRESHOLD", cfg.ConsolidationThreshold)
	cfg.ForgettingThreshold = getEnvFloat("DECAY_FORGETTING_THRESHOLD", cfg.ForgettingThreshold)
	if seconds := getEnvFloat("DECAY_TICK_INTERVAL_SECONDS", cfg.TickInterval.Seconds()); seconds > 0 {
		cfg.TickInterval = time.Duration(seconds * float64(time.Second))
	}
	return cfg
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
