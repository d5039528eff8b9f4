package mountain

// Transform places the mountain's local grid in world space. Scale applies
// uniformly to all three axes.
type Transform struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	OffsetZ float64 `yaml:"offset_z"`
	Scale   float64 `yaml:"scale"`
}

// IdentityTransform leaves local and world coordinates equal.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// ToLocal maps a world XZ position to local grid coordinates.
func (t Transform) ToLocal(worldX, worldZ float64) (x, z float64) {
	s := t.scale()
	return (worldX - t.OffsetX) / s, (worldZ - t.OffsetZ) / s
}

// ToWorld maps a local XZ position to world coordinates.
func (t Transform) ToWorld(x, z float64) (worldX, worldZ float64) {
	s := t.scale()
	return x*s + t.OffsetX, z*s + t.OffsetZ
}

// ToWorldY maps a local height to world Y.
func (t Transform) ToWorldY(h float64) float64 {
	return t.OffsetY + h*t.scale()
}
