// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by ApplyEnvOverrides.
const (
	EnvWorldSize        = "STARTRADER_WORLD_SIZE"
	EnvTickRate         = "STARTRADER_TICK_RATE"
	EnvThreatRadius     = "STARTRADER_THREAT_RADIUS"
	EnvDecisionCooldown = "STARTRADER_DECISION_COOLDOWN"
)

// ApplyEnvOverrides layers STARTRADER_* environment variables over a
// loaded configuration and re-validates the result. Unset variables leave
// the file values untouched.
func ApplyEnvOverrides(config *SimConfig) error {
	var err error
	if config.WorldSize, err = envFloat(EnvWorldSize, config.WorldSize); err != nil {
		return err
	}
	if config.TickRate, err = envInt(EnvTickRate, config.TickRate); err != nil {
		return err
	}
	if config.ThreatRadius, err = envFloat(EnvThreatRadius, config.ThreatRadius); err != nil {
		return err
	}
	if config.DecisionCooldown, err = envFloat(EnvDecisionCooldown, config.DecisionCooldown); err != nil {
		return err
	}
	return config.Validate()
}

func envFloat(name string, fallback float64) (float64, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return value, nil
}

func envInt(name string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return value, nil
}
