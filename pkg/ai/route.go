// pkg/ai/route.go
package ai

import (
	"fmt"
	"math"

	"github.com/driftline/startrader/pkg/physics"
)

// SectorSize is the grid pitch used to bucket world positions into named
// sectors for route memory.
const SectorSize = 500.0

// SectorOf maps a plane position to its sector name.
func SectorOf(p physics.Vector2D) string {
	return fmt.Sprintf("%d:%d",
		int(math.Floor(p.X/SectorSize)),
		int(math.Floor(p.Y/SectorSize)),
	)
}

// RouteMemory is an NPC's accumulated navigation experience: stations it
// prefers, sectors it avoids, and routes it knows pay off.
type RouteMemory struct {
	PreferredRoutes  []string
	AvoidedSectors   map[string]struct{}
	ProfitableRoutes map[string]float64 // station id -> best observed margin
}

// NewRouteMemory returns empty route memory.
func NewRouteMemory() RouteMemory {
	return RouteMemory{
		AvoidedSectors:   make(map[string]struct{}),
		ProfitableRoutes: make(map[string]float64),
	}
}

// RecordProfit remembers the margin earned at a station, keeping the best
// observation and promoting the station into the preferred list on first
// sight.
func (m *RouteMemory) RecordProfit(stationID string, margin float64) {
	if best, ok := m.ProfitableRoutes[stationID]; !ok || margin > best {
		m.ProfitableRoutes[stationID] = margin
	}
	for _, id := range m.PreferredRoutes {
		if id == stationID {
			return
		}
	}
	m.PreferredRoutes = append(m.PreferredRoutes, stationID)
}

// AvoidSector marks a sector as dangerous.
func (m *RouteMemory) AvoidSector(sector string) {
	m.AvoidedSectors[sector] = struct{}{}
}

// IsAvoided reports whether a sector has been marked dangerous.
func (m *RouteMemory) IsAvoided(sector string) bool {
	_, ok := m.AvoidedSectors[sector]
	return ok
}

// BestRoute returns the known station with the highest recorded margin.
// Ties resolve to the lexically smaller station id so the choice is
// deterministic.
func (m *RouteMemory) BestRoute() (string, bool) {
	var (
		bestID     string
		bestMargin = math.Inf(-1)
		found      bool
	)
	for id, margin := range m.ProfitableRoutes {
		if margin > bestMargin || (margin == bestMargin && id < bestID) {
			bestID = id
			bestMargin = margin
			found = true
		}
	}
	return bestID, found
}
