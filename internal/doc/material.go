package doc

// Material holds the surface parameters a layer can reference. Layers
// reference materials weakly by id; deleting a material clears the
// reference on every layer that pointed to it.
type Material struct {
	ID   int // unique within the owning Image, 0 = unassigned
	Name string

	BaseColor [4]float32
	Metallic  float32
	Roughness float32
	Emission  [3]float32
}

// NewMaterial returns a material with default parameters.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		BaseColor: [4]float32{1, 1, 1, 1},
		Metallic:  0.2,
		Roughness: 0.5,
	}
}

// Copy returns an independent copy of the material.
func (m *Material) Copy() *Material {
	cp := *m
	return &cp
}

// Key returns the material's change key.
func (m *Material) Key() uint32 {
	h := keyHash{}
	h.addInt(m.ID)
	h.addString(m.Name)
	h.addFloats(m.BaseColor[:]...)
	h.addFloat(m.Metallic)
	h.addFloat(m.Roughness)
	h.addFloats(m.Emission[:]...)
	return h.sum
}
