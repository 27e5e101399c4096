// pkg/world/world.go

// Package world holds the static catalog this core consumes: stations
// with fixed coordinates and ship classes with their movement envelopes.
// It is the concrete form of the external World/Station collaborator the
// simulation resolves targets against.
package world

import (
	"fmt"

	"github.com/driftline/startrader/pkg/config"
	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/physics"
)

// Station is a fixed dock in the world, drawn on the station depth layer.
type Station struct {
	ID       string
	Name     string
	Position physics.Vector2D
}

// World is the station and ship-class catalog. Station order is the
// declaration order from config, so iteration and "first station"
// fallbacks are deterministic.
type World struct {
	stations     map[string]Station
	stationOrder []string
	classes      map[string]entity.ShipStats
}

// New creates an empty world catalog.
func New() *World {
	return &World{
		stations: make(map[string]Station),
		classes:  make(map[string]entity.ShipStats),
	}
}

// FromConfig builds a world from a validated configuration.
func FromConfig(cfg *config.SimConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world config rejected: %w", err)
	}

	w := New()
	for _, sc := range cfg.Stations {
		w.AddStation(Station{
			ID:       sc.ID,
			Name:     sc.Name,
			Position: physics.Vector2D{X: sc.X, Y: sc.Y},
		})
	}
	for name, class := range cfg.ShipClasses {
		w.classes[name] = entity.ShipStats{
			MaxSpeed:        class.MaxSpeed,
			MaxAcceleration: class.MaxAcceleration,
			Maneuverability: class.Maneuverability,
			BrakingDistance: class.BrakingDistance,
		}
	}
	return w, nil
}

// AddStation registers a station. Re-adding an id replaces the entry but
// keeps its original position in the declaration order.
func (w *World) AddStation(station Station) {
	if _, exists := w.stations[station.ID]; !exists {
		w.stationOrder = append(w.stationOrder, station.ID)
	}
	w.stations[station.ID] = station
}

// Station looks up a station by id.
func (w *World) Station(id string) (Station, bool) {
	station, ok := w.stations[id]
	return station, ok
}

// ResolveStation implements entity.StationResolver.
func (w *World) ResolveStation(id string) (physics.Vector2D, bool) {
	station, ok := w.stations[id]
	if !ok {
		return physics.Vector2D{}, false
	}
	return station.Position, true
}

// StationIDs implements entity.StationResolver. The slice is a copy in
// declaration order.
func (w *World) StationIDs() []string {
	return append([]string(nil), w.stationOrder...)
}

// ShipStats resolves a ship class name from the catalog.
func (w *World) ShipStats(class string) (entity.ShipStats, bool) {
	stats, ok := w.classes[class]
	return stats, ok
}

// StationLayer returns the depth layer stations render on.
func (w *World) StationLayer() float64 {
	return entity.LayerStations
}
