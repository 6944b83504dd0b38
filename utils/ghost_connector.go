package utils

import (
	"fmt"
	"github.com/notargets/FVMetal/partitions"
	"sort"
)

// GhostConnector manages pick and place indices that refresh ghost node
// values from their owning partition. Each partition numbers its nodes
// locally with the owned nodes first, ascending by global index, followed by
// its ghosts, also ascending.
type GhostConnector struct {
	NumPartitions int
	NumNodes      int // Total global nodes

	NToP []int // Node → owning partition

	// Partition mappings
	OwnedPerPartition []int         // Owned nodes per partition
	NodesPerPartition []int         // Owned plus ghost nodes per partition
	GlobalToLocalNode []map[int]int // [partition][globalNode] → localNode
	LocalToGlobalNode [][]int       // [partition][localNode] → globalNode

	// Pick/Place indices per partition
	PickIndices  [][]PickBuffer  // [sourcePartition][targetPartition]
	PlaceIndices [][]PlaceBuffer // [targetPartition][sourcePartition]
}

// PickBuffer contains the local indices of owned nodes to send
type PickBuffer struct {
	Indices         []int // Local node indices in the source partition
	TargetPartition int
}

// PlaceBuffer contains the local indices of ghost nodes to fill
type PlaceBuffer struct {
	Indices         []int // Local ghost indices in the target partition
	SourcePartition int
}

// NewGhostConnector creates a ghost connector from a partition layout and the
// node pairs of the mesh edges. An edge whose nodes have different owners
// makes each node a ghost of the other node's partition.
func NewGhostConnector(layout *partitions.PartitionLayout, edges [][2]int) (*GhostConnector, error) {
	if layout == nil || layout.TotalNodes <= 0 {
		return nil, fmt.Errorf("empty partition layout")
	}
	for i, e := range edges {
		for _, n := range e {
			if n < 0 || n >= layout.TotalNodes {
				return nil, fmt.Errorf("edge %d: node %d out of range [0,%d)", i, n, layout.TotalNodes)
			}
		}
	}

	gc := &GhostConnector{
		NumPartitions: layout.NumPartitions,
		NumNodes:      layout.TotalNodes,
		NToP:          layout.NToP,
	}

	// Build partition mappings
	gc.buildPartitionMappings(layout, edges)

	// Initialize pick/place buffers
	gc.initializeBuffers()

	// Build indices
	gc.BuildIndices()

	return gc, nil
}

// buildPartitionMappings numbers owned nodes then ghosts in every partition
func (gc *GhostConnector) buildPartitionMappings(layout *partitions.PartitionLayout, edges [][2]int) {
	ghosts := make([]map[int]struct{}, gc.NumPartitions)
	for p := range ghosts {
		ghosts[p] = make(map[int]struct{})
	}
	for _, e := range edges {
		pa, pb := gc.NToP[e[0]], gc.NToP[e[1]]
		if pa == pb {
			continue
		}
		ghosts[pa][e[1]] = struct{}{}
		ghosts[pb][e[0]] = struct{}{}
	}

	gc.OwnedPerPartition = make([]int, gc.NumPartitions)
	gc.NodesPerPartition = make([]int, gc.NumPartitions)
	gc.GlobalToLocalNode = make([]map[int]int, gc.NumPartitions)
	gc.LocalToGlobalNode = make([][]int, gc.NumPartitions)

	for p := 0; p < gc.NumPartitions; p++ {
		owned := layout.Partitions[p].Nodes
		ghostNodes := make([]int, 0, len(ghosts[p]))
		for n := range ghosts[p] {
			ghostNodes = append(ghostNodes, n)
		}
		sort.Ints(ghostNodes)

		local := make([]int, 0, len(owned)+len(ghostNodes))
		local = append(local, owned...)
		local = append(local, ghostNodes...)

		gc.OwnedPerPartition[p] = len(owned)
		gc.NodesPerPartition[p] = len(local)
		gc.LocalToGlobalNode[p] = local
		gc.GlobalToLocalNode[p] = make(map[int]int, len(local))
		for l, g := range local {
			gc.GlobalToLocalNode[p][g] = l
		}
	}
}

// initializeBuffers creates empty pick and place buffer structures
func (gc *GhostConnector) initializeBuffers() {
	gc.PickIndices = make([][]PickBuffer, gc.NumPartitions)
	gc.PlaceIndices = make([][]PlaceBuffer, gc.NumPartitions)

	for p := 0; p < gc.NumPartitions; p++ {
		gc.PickIndices[p] = make([]PickBuffer, gc.NumPartitions)
		gc.PlaceIndices[p] = make([]PlaceBuffer, gc.NumPartitions)

		for q := 0; q < gc.NumPartitions; q++ {
			gc.PickIndices[p][q] = PickBuffer{
				Indices:         make([]int, 0),
				TargetPartition: q,
			}
			gc.PlaceIndices[p][q] = PlaceBuffer{
				Indices:         make([]int, 0),
				SourcePartition: q,
			}
		}
	}
}

// BuildIndices constructs pick and place indices for all partitions
func (gc *GhostConnector) BuildIndices() {
	for p := 0; p < gc.NumPartitions; p++ {
		// Ghosts follow the owned nodes
		for localGhost := gc.OwnedPerPartition[p]; localGhost < gc.NodesPerPartition[p]; localGhost++ {
			globalNode := gc.LocalToGlobalNode[p][localGhost]

			// Which partition owns this node?
			sourcePartition := gc.NToP[globalNode]
			localSource := gc.GlobalToLocalNode[sourcePartition][globalNode]

			// Source partition sends its owned value to partition p
			gc.PickIndices[sourcePartition][p].Indices = append(
				gc.PickIndices[sourcePartition][p].Indices, localSource)

			// Partition p places the received value in its ghost slot
			gc.PlaceIndices[p][sourcePartition].Indices = append(
				gc.PlaceIndices[p][sourcePartition].Indices, localGhost)
		}
	}
}

// GetPickIndices returns pick indices for sending from source to target partition
func (gc *GhostConnector) GetPickIndices(sourcePartition, targetPartition int) []int {
	if sourcePartition < 0 || sourcePartition >= gc.NumPartitions ||
		targetPartition < 0 || targetPartition >= gc.NumPartitions {
		return nil
	}
	return gc.PickIndices[sourcePartition][targetPartition].Indices
}

// GetPlaceIndices returns place indices for target partition receiving from source
func (gc *GhostConnector) GetPlaceIndices(targetPartition, sourcePartition int) []int {
	if targetPartition < 0 || targetPartition >= gc.NumPartitions ||
		sourcePartition < 0 || sourcePartition >= gc.NumPartitions {
		return nil
	}
	return gc.PlaceIndices[targetPartition][sourcePartition].Indices
}

// IsOwned reports whether local node l of partition p is owned by p
func (gc *GhostConnector) IsOwned(p, l int) bool {
	return l < gc.OwnedPerPartition[p]
}

// Verify checks index validity and conservation properties
func (gc *GhostConnector) Verify() error {
	// Verify 1: Local validity - picks read owned nodes, places write ghosts
	for p := 0; p < gc.NumPartitions; p++ {
		for q := 0; q < gc.NumPartitions; q++ {
			for _, idx := range gc.PickIndices[p][q].Indices {
				if idx < 0 || idx >= gc.OwnedPerPartition[p] {
					return fmt.Errorf("invalid pick index %d for partition %d (owned %d)",
						idx, p, gc.OwnedPerPartition[p])
				}
			}
			for _, idx := range gc.PlaceIndices[p][q].Indices {
				if idx < gc.OwnedPerPartition[p] || idx >= gc.NodesPerPartition[p] {
					return fmt.Errorf("invalid place index %d for partition %d (ghosts [%d,%d))",
						idx, p, gc.OwnedPerPartition[p], gc.NodesPerPartition[p])
				}
			}
		}
	}

	// Verify 2: Correspondence - pick and place arrays have same length
	for p := 0; p < gc.NumPartitions; p++ {
		for q := 0; q < gc.NumPartitions; q++ {
			pickLen := len(gc.PickIndices[p][q].Indices)
			placeLen := len(gc.PlaceIndices[q][p].Indices)
			if pickLen != placeLen {
				return fmt.Errorf("length mismatch: pick[%d][%d]=%d, place[%d][%d]=%d",
					p, q, pickLen, q, p, placeLen)
			}
		}
	}

	// Verify 3: Conservation - total pick operations equals total ghosts
	totalPicks := 0
	for p := 0; p < gc.NumPartitions; p++ {
		for q := 0; q < gc.NumPartitions; q++ {
			totalPicks += len(gc.PickIndices[p][q].Indices)
		}
	}

	totalGhosts := 0
	for p := 0; p < gc.NumPartitions; p++ {
		totalGhosts += gc.NodesPerPartition[p] - gc.OwnedPerPartition[p]
	}

	if totalPicks != totalGhosts {
		return fmt.Errorf("conservation error: total picks %d != total ghosts %d",
			totalPicks, totalGhosts)
	}

	return nil
}

// Exchange copies owned values into the ghost slots of every partition.
// locals[p] is the local vector of partition p.
func (gc *GhostConnector) Exchange(locals [][]float64) error {
	if len(locals) != gc.NumPartitions {
		return fmt.Errorf("%d local vectors for %d partitions", len(locals), gc.NumPartitions)
	}
	for p, v := range locals {
		if len(v) != gc.NodesPerPartition[p] {
			return fmt.Errorf("partition %d: local vector length %d != %d",
				p, len(v), gc.NodesPerPartition[p])
		}
	}

	for source := 0; source < gc.NumPartitions; source++ {
		for target := 0; target < gc.NumPartitions; target++ {
			pick := gc.GetPickIndices(source, target)
			place := gc.GetPlaceIndices(target, source)
			for i, idx := range pick {
				locals[target][place[i]] = locals[source][idx]
			}
		}
	}
	return nil
}
