package fvm

// NodeState is the persistent potential history of a node
type NodeState struct {
	current  float64 // committed potential [V]
	previous float64 // potential before the last commit [V]
}

// Node is an FVM control volume as seen by one worker
type Node struct {
	GlobalIndex int     // row/column in the global system
	LocalIndex  int     // offset in this worker's iterate vector
	Owned       bool    // false for ghost copies of another worker's node
	Volume      float64 // control volume [m^3]
	ZWidth      float64 // z extent used by 2D meshes [m]

	state NodeState
}

// NewNode returns a node whose committed and previous potentials are psi
func NewNode(global, local int, owned bool, volume, zWidth, psi float64) *Node {
	return &Node{
		GlobalIndex: global,
		LocalIndex:  local,
		Owned:       owned,
		Volume:      volume,
		ZWidth:      zWidth,
		state:       NodeState{current: psi, previous: psi},
	}
}

// Potential returns the committed potential
func (n *Node) Potential() float64 { return n.state.current }

// PreviousPotential returns the potential before the last commit
func (n *Node) PreviousPotential() float64 { return n.state.previous }

func (n *Node) commit(v float64) {
	n.state.previous = n.state.current
	n.state.current = v
}

// Edge joins two nodes of the same region
type Edge struct {
	N1, N2   *Node
	Distance float64 // node to node distance [m]
	Area     float64 // control volume interface area, sign not significant [m^2]
}
