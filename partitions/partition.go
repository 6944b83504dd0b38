package partitions

import (
	"fmt"
)

// Partition is the set of nodes one worker owns. Only the owner emits the
// residual and Jacobian rows of its nodes; other workers hold ghost copies.
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Node membership
	Nodes    []int // Global node indices owned by this partition, ascending
	NumNodes int   // Number of owned nodes
}

// PartitionLayout manages the complete node decomposition
type PartitionLayout struct {
	// All partitions in the mesh
	Partitions []Partition

	// Global sizing information
	MaxNodes      int // max(NumNodes) across all partitions
	TotalNodes    int // Sum of all owned nodes across partitions
	NumPartitions int // Total number of partitions

	// Node to partition mapping
	NToP []int // Length TotalNodes: node n is owned by partition NToP[n]
}

// NewPartitionLayout builds a layout from an owner assignment produced by an
// external partitioner
func NewPartitionLayout(nToP []int) (*PartitionLayout, error) {
	if len(nToP) == 0 {
		return nil, fmt.Errorf("empty node to partition map")
	}
	numPartitions := 0
	for n, p := range nToP {
		if p < 0 {
			return nil, fmt.Errorf("node %d: negative partition %d", n, p)
		}
		if p+1 > numPartitions {
			numPartitions = p + 1
		}
	}

	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{ID: i, Nodes: make([]int, 0)}
	}
	for node, part := range nToP {
		partitions[part].Nodes = append(partitions[part].Nodes, node)
		partitions[part].NumNodes++
	}

	layout := &PartitionLayout{
		Partitions:    partitions,
		MaxNodes:      maxNodes(partitions),
		TotalNodes:    len(nToP),
		NumPartitions: numPartitions,
		NToP:          append([]int(nil), nToP...),
	}
	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

func maxNodes(partitions []Partition) int {
	m := 0
	for _, p := range partitions {
		if p.NumNodes > m {
			m = p.NumNodes
		}
	}
	return m
}

// Methods for PartitionLayout

// GetPartition returns the partition owning node n
func (pl *PartitionLayout) GetPartition(nodeID int) int {
	if nodeID < 0 || nodeID >= len(pl.NToP) {
		return -1
	}
	return pl.NToP[nodeID]
}

// IsOwned reports whether partition p owns node n
func (pl *PartitionLayout) IsOwned(p, nodeID int) bool {
	return pl.GetPartition(nodeID) == p
}

// ValidateLayout checks that every node has exactly one owner and that the
// partition lists agree with NToP
func (pl *PartitionLayout) ValidateLayout() error {
	if len(pl.NToP) != pl.TotalNodes {
		return fmt.Errorf("NToP length %d != TotalNodes %d", len(pl.NToP), pl.TotalNodes)
	}
	if len(pl.Partitions) != pl.NumPartitions {
		return fmt.Errorf("%d partitions != NumPartitions %d", len(pl.Partitions), pl.NumPartitions)
	}

	owners := make([]int, pl.TotalNodes)
	for i, p := range pl.Partitions {
		if p.ID != i {
			return fmt.Errorf("partition at position %d has ID %d", i, p.ID)
		}
		if p.NumNodes != len(p.Nodes) {
			return fmt.Errorf("partition %d: NumNodes %d != %d listed nodes", p.ID, p.NumNodes, len(p.Nodes))
		}
		for _, n := range p.Nodes {
			if n < 0 || n >= pl.TotalNodes {
				return fmt.Errorf("partition %d: node %d out of range", p.ID, n)
			}
			if pl.NToP[n] != p.ID {
				return fmt.Errorf("partition %d lists node %d owned by %d", p.ID, n, pl.NToP[n])
			}
			owners[n]++
		}
	}
	for n, count := range owners {
		if count != 1 {
			return fmt.Errorf("node %d has %d owners", n, count)
		}
	}

	if actual := maxNodes(pl.Partitions); actual != pl.MaxNodes {
		return fmt.Errorf("computed MaxNodes %d != stored MaxNodes %d", actual, pl.MaxNodes)
	}
	return nil
}
