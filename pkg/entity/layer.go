// pkg/entity/layer.go
package entity

// Depth layers. The Z component of a position selects draw ordering and
// categorical grouping ("same plane" checks); movement physics never reads
// it. Higher layers draw above lower ones.
const (
	LayerStations = 30.0
	LayerDefault  = 40.0
	LayerShips    = 50.0
	LayerEffects  = 70.0
)

// kindLayers maps entity kinds to their depth layer.
var kindLayers = map[string]float64{
	"ship":    LayerShips,
	"npc":     LayerShips,
	"player":  LayerShips,
	"station": LayerStations,
	"effect":  LayerEffects,
}

// LayerForKind returns the depth layer for an entity kind, falling back to
// LayerDefault for kinds without a mapping.
func LayerForKind(kind string) float64 {
	if layer, ok := kindLayers[kind]; ok {
		return layer
	}
	return LayerDefault
}
