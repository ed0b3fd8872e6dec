// Package result holds the typed tables reconstructed from a SPACE GASS
// text export, plus filter and join queries over them.
//
// A Set is built once by the parse and load packages and is read-only
// afterwards, so it may be shared between goroutines without locking.
package result

// End identifies which end of a member a force/moment row was reported at.
type End int

const (
	EndUnknown End = iota // node id did not resolve to the member's ends
	EndStart
	EndEnd
)

func (e End) String() string {
	switch e {
	case EndStart:
		return "start"
	case EndEnd:
		return "end"
	}
	return "unknown"
}

// Units maps a quantity name to the unit symbol exactly as printed in the
// report, e.g. "LENGTH" -> "m", "FORCE" -> "kN". No conversion is ever
// applied to the stored values.
type Units map[string]string

func (u Units) Length() string { return u["LENGTH"] }
func (u Units) Force() string  { return u["FORCE"] }
func (u Units) Moment() string { return u["MOMENT"] }
func (u Units) Stress() string { return u["STRESS"] }
func (u Units) Mass() string   { return u["MASS"] }

// Node is a point in the model, coordinates in the declared length unit.
type Node struct {
	ID      int
	X, Y, Z float64
}

// Member is a structural element between two nodes.
type Member struct {
	ID         int
	StartNode  int
	EndNode    int
	SectionID  int
	MaterialID int
	ReleaseI   string // end fixity code at the start node
	ReleaseJ   string // end fixity code at the end node

	section  *Section
	material *Material
	start    *Node
	end      *Node
}

// Section is a cross-section property set. The geometric fields are in the
// declared section unit. Depth and Width come from the third record line.
type Section struct {
	ID        int
	Name      string
	Source    string // library the section was taken from, if any
	ShortName string
	Area      float64
	Ixx       float64
	Iyy       float64
	J         float64
	Zxx       float64
	Zyy       float64
	Rx        float64
	Ry        float64
	Depth     float64
	Width     float64
}

type Material struct {
	ID           int
	Name         string
	Type         string
	E            float64
	Poisson      float64
	Density      float64
	ThermalCoeff float64
}

// Restraint is a boundary condition at a node. Code is the six character
// V/R/F code as printed; Fixed holds one flag per degree of freedom in
// x, y, z, xx, yy, zz order (true for anything other than released).
type Restraint struct {
	NodeID int
	Code   string
	Fixed  [6]bool
}

// NodeLoad is an applied load at a node for a load case.
type NodeLoad struct {
	LoadCase               int
	NodeID                 int
	FX, FY, FZ, MX, MY, MZ float64
}

// Title names a load case. It acts as the load case dictionary for every
// result table carrying a load case id.
type Title struct {
	LoadCase int
	Title    string
}

// Combination is one component of a combination load case: the referenced
// primary case and its factor. A combination with several components
// appears as several rows sharing the same Combo id.
type Combination struct {
	Combo    int
	LoadCase int
	Factor   float64
}

type Displacement struct {
	LoadCase               int
	NodeID                 int
	DX, DY, DZ, RX, RY, RZ float64
}

type Reaction struct {
	LoadCase               int
	NodeID                 int
	FX, FY, FZ, MX, MY, MZ float64
}

// ForceMoment is a member end force/moment row. NodeID is the node the
// values were reported at; End is resolved against the member table during
// Init and stays EndUnknown when the reference dangles.
type ForceMoment struct {
	LoadCase               int
	MemberID               int
	NodeID                 int
	End                    End
	FX, FY, FZ, MX, MY, MZ float64
}

// IntForceMoment is a force/moment sample at an interior station along a
// member. Position is the distance from the start node.
type IntForceMoment struct {
	LoadCase               int
	MemberID               int
	Station                int
	Position               float64
	FX, FY, FZ, MX, MY, MZ float64
}

// IntDisplacement is a displacement sample at an interior station.
type IntDisplacement struct {
	LoadCase               int
	MemberID               int
	Station                int
	Position               float64
	DX, DY, DZ, RX, RY, RZ float64
}

type MemberStress struct {
	LoadCase    int
	MemberID    int
	Position    float64
	Axial       float64
	BendingY    float64
	BendingZ    float64
	CombinedMax float64
	CombinedMin float64
}

// SteelMember carries the steel design parameters attached to a member.
type SteelMember struct {
	MemberID   int
	DesignCode string
	Group      string
	Ky         float64 // effective length factor, minor axis
	Kz         float64 // effective length factor, major axis
	Phi        float64 // capacity factor
}

// RawBlock preserves a block whose header the parser did not recognize.
// Newer report variants degrade to "section not loaded" instead of
// failing the whole file.
type RawBlock struct {
	Header string
	Line   int // line number of the header in the source file
	Lines  []string
}

// Set is the full parsed report: one slice per table, in source order,
// plus the units dictionary. Nothing is mutated after Init; lookups are
// only built there.
type Set struct {
	Name  string // source file name, for messages only
	Units Units

	Nodes            []Node
	Members          []Member
	Sections         []Section
	Materials        []Material
	Restraints       []Restraint
	NodeLoads        []NodeLoad
	Titles           []Title
	Combinations     []Combination
	Displacements    []Displacement
	Reactions        []Reaction
	ForcesMoments    []ForceMoment
	IntForcesMoments []IntForceMoment
	IntDisplacements []IntDisplacement
	MemberStresses   []MemberStress
	SteelMembers     []SteelMember
	Raw              []RawBlock

	setup        bool
	nodeLookup   map[int]*Node
	memberLookup map[int]*Member
	sectLookup   map[int]*Section
	matLookup    map[int]*Material
	titleLookup  map[int]*Title
}

// Node returns the node with the given id, or nil. Init must have run.
func (s *Set) Node(id int) *Node { return s.nodeLookup[id] }

// Member returns the member with the given id, or nil. Init must have run.
func (s *Set) Member(id int) *Member { return s.memberLookup[id] }

// Section returns the section with the given id, or nil. Init must have run.
func (s *Set) Section(id int) *Section { return s.sectLookup[id] }

// Material returns the material with the given id, or nil. Init must have run.
func (s *Set) Material(id int) *Material { return s.matLookup[id] }

// Title returns the load case title row for the given id, or nil.
func (s *Set) Title(loadCase int) *Title { return s.titleLookup[loadCase] }

// Section returns the member's resolved section, or nil when the
// reference dangles.
func (m *Member) Section() *Section { return m.section }

// Material returns the member's resolved material, or nil.
func (m *Member) Material() *Material { return m.material }

// Start returns the member's resolved start node, or nil.
func (m *Member) Start() *Node { return m.start }

// End returns the member's resolved end node, or nil.
func (m *Member) End() *Node { return m.end }
