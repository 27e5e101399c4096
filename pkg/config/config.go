// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimConfig contains configuration for a simulation run.
type SimConfig struct {
	WorldSize        float64                    `json:"worldSize"`
	TickRate         int                        `json:"tickRate"`
	ArrivalEpsilon   float64                    `json:"arrivalEpsilon"`
	ThreatRadius     float64                    `json:"threatRadius"`
	DecisionCooldown float64                    `json:"decisionCooldown"`
	HostileTag       string                     `json:"hostileTag"`
	ShipClasses      map[string]ShipClassConfig `json:"shipClasses"`
	Stations         []StationConfig            `json:"stations"`
	NPCs             []NPCConfig                `json:"npcs"`
}

// ShipClassConfig contains the movement envelope of a ship class. The
// values are tunables, not free-form: Validate enforces the relationship
// between them at load time.
type ShipClassConfig struct {
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAcceleration float64 `json:"maxAcceleration"`
	Maneuverability float64 `json:"maneuverability"`
	BrakingDistance float64 `json:"brakingDistance"`
}

// StationConfig contains configuration for a station
type StationConfig struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NPCConfig spawns one NPC ship at startup.
type NPCConfig struct {
	Name      string  `json:"name"`
	Archetype string  `json:"archetype"` // trader, pirate, patrol
	ShipClass string  `json:"shipClass"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// LoadConfig loads a configuration from a file and validates it.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration contract. Ship class stats must be
// positive, and the braking distance must cover the class's physical
// stopping distance (v²/2a); otherwise a ship at full speed cannot stop
// at its target and would overshoot indefinitely.
func (c *SimConfig) Validate() error {
	if c.WorldSize <= 0 {
		return fmt.Errorf("worldSize must be positive, got %f", c.WorldSize)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}
	if c.ArrivalEpsilon <= 0 {
		return fmt.Errorf("arrivalEpsilon must be positive, got %f", c.ArrivalEpsilon)
	}

	for name, class := range c.ShipClasses {
		if err := validateShipClass(name, class); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(c.Stations))
	for _, station := range c.Stations {
		if station.ID == "" {
			return fmt.Errorf("station %q has an empty id", station.Name)
		}
		if _, dup := seen[station.ID]; dup {
			return fmt.Errorf("duplicate station id %q", station.ID)
		}
		seen[station.ID] = struct{}{}
	}

	return nil
}

func validateShipClass(name string, class ShipClassConfig) error {
	if class.MaxSpeed <= 0 {
		return fmt.Errorf("ship class %q: maxSpeed must be positive, got %f", name, class.MaxSpeed)
	}
	if class.MaxAcceleration <= 0 {
		return fmt.Errorf("ship class %q: maxAcceleration must be positive, got %f", name, class.MaxAcceleration)
	}
	if class.Maneuverability <= 0 {
		return fmt.Errorf("ship class %q: maneuverability must be positive, got %f", name, class.Maneuverability)
	}
	stoppingDistance := class.MaxSpeed * class.MaxSpeed / (2 * class.MaxAcceleration)
	if class.BrakingDistance < stoppingDistance {
		return fmt.Errorf("ship class %q: brakingDistance %f cannot cover stopping distance %f (maxSpeed²/2·maxAcceleration)",
			name, class.BrakingDistance, stoppingDistance)
	}
	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		WorldSize:        10000,
		TickRate:         20,
		ArrivalEpsilon:   2.0,
		ThreatRadius:     600,
		DecisionCooldown: 5.0,
		HostileTag:       "pirate",
		ShipClasses: map[string]ShipClassConfig{
			"Shuttle": {
				MaxSpeed:        80,
				MaxAcceleration: 120,
				Maneuverability: 3.5,
				BrakingDistance: 40,
			},
			"Freighter": {
				MaxSpeed:        60,
				MaxAcceleration: 40,
				Maneuverability: 1.2,
				BrakingDistance: 90,
			},
			"Clipper": {
				MaxSpeed:        160,
				MaxAcceleration: 180,
				Maneuverability: 2.8,
				BrakingDistance: 110,
			},
			"Corvette": {
				MaxSpeed:        130,
				MaxAcceleration: 150,
				Maneuverability: 3.2,
				BrakingDistance: 80,
			},
		},
		Stations: []StationConfig{
			{ID: "meridian", Name: "Meridian Station", X: -3000, Y: 500},
			{ID: "kessler", Name: "Kessler Yards", X: 2400, Y: -1800},
			{ID: "halcyon", Name: "Halcyon Depot", X: 800, Y: 3200},
		},
		NPCs: []NPCConfig{
			{Name: "Meridian Runner", Archetype: "trader", ShipClass: "Freighter", X: -2800, Y: 600},
			{Name: "Dust Jackal", Archetype: "pirate", ShipClass: "Corvette", X: 1500, Y: 900},
			{Name: "Halcyon Warden", Archetype: "patrol", ShipClass: "Clipper", X: 700, Y: 3000},
		},
	}
}
