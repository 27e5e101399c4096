// pkg/physics/position.go
package physics

// Position3 is a world position: X/Y on the movement plane plus a discrete
// depth layer Z used for draw ordering and categorical grouping. Z never
// participates in movement, distance, or angle math.
type Position3 struct {
	X float64
	Y float64
	Z float64
}

// Plane projects the position onto the movement plane.
func (p Position3) Plane() Vector2D {
	return Vector2D{X: p.X, Y: p.Y}
}

// WithPlane returns a copy with the plane coordinates replaced and the
// depth layer preserved.
func (p Position3) WithPlane(v Vector2D) Position3 {
	return Position3{X: v.X, Y: v.Y, Z: p.Z}
}

// PositionAt places a plane point on the given depth layer.
func PositionAt(v Vector2D, layer float64) Position3 {
	return Position3{X: v.X, Y: v.Y, Z: layer}
}
