package result

// Boundary records for an external capacity engine. The engine itself is
// not part of this module; these types only make it trivial to hand a
// parsed force row and section geometry across.

// AppliedLoad is one applied load set, in the report's force and moment
// units.
type AppliedLoad struct {
	FX, FY, FZ float64
	MX, MY, MZ float64
}

// AppliedLoad maps the force row onto an applied load record.
func (f ForceMoment) AppliedLoad() AppliedLoad {
	return AppliedLoad{FX: f.FX, FY: f.FY, FZ: f.FZ, MX: f.MX, MY: f.MY, MZ: f.MZ}
}

// SectionGeometry is the section envelope a capacity check needs.
type SectionGeometry struct {
	Depth float64
	Width float64
}

// Geometry extracts the section envelope.
func (sec *Section) Geometry() SectionGeometry {
	return SectionGeometry{Depth: sec.Depth, Width: sec.Width}
}

// ReinforcementLayer describes one reinforcement layer for a capacity
// check: a bar size and the spacing list across the layer.
type ReinforcementLayer struct {
	BarSize float64
	Spacing []float64
}
