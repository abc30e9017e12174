//Package network finds hydrogen-bond candidate connections among water
//molecules and protein atoms, and assembles them into typed graphs. The
//searches here are the per-frame core of the library: they take an
//AtomCatalog, an optional active-site descriptor, and produce Connection
//records that the builder turns into a graph.
package network

// BondType classifies an edge by the residue types of its endpoints.
type BondType int

const (
	WatWat BondType = iota
	WatProt
)

func (b BondType) String() string {
	if b == WatWat {
		return "WAT-WAT"
	}
	return "WAT-PROT"
}

// SiteStatus tags a connection with its active-site membership. SiteNone
// means no active site was defined for the frame.
type SiteStatus int

const (
	SiteNone SiteStatus = iota
	SiteActive
	SiteNotActive
)

func (s SiteStatus) String() string {
	switch s {
	case SiteActive:
		return "active_site"
	case SiteNotActive:
		return "not_active_site"
	}
	return "None"
}

// Role sub-classifies the protein side of a water-protein connection.
type Role int

const (
	RoleNone Role = iota
	RoleBackbone
	RoleSideChain
)

func (r Role) String() string {
	switch r {
	case RoleBackbone:
		return "backbone"
	case RoleSideChain:
		return "side-chain"
	}
	return ""
}

// Connection is one edge candidate. From and To are atom indices (the oxygen
// index for waters). For undirected water-water connections From < To always
// holds, so each unordered pair appears exactly once. For directed
// connections From is the index of the hydrogen owner (the donor) and To the
// acceptor. Name is the atom name of the source endpoint.
type Connection struct {
	From int
	To   int
	Name string
	Bond BondType
	Site SiteStatus
	Role Role //only for WAT-PROT connections of the undirected finder
}
