package partitions

import (
	"fmt"
	"math"
)

// PartitionBuilder assigns the nodes of a region to workers
type PartitionBuilder struct {
	NumNodes int

	// Partitioning parameters
	TargetPartitionSize int // Desired nodes per partition
	NumPartitions       int // Fixed partition count, overrides TargetPartitionSize
	Strategy            PartitionStrategy
}

// PartitionStrategy defines how nodes are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive nodes
	RoundRobin                              // Distribute cyclically
)

func (s PartitionStrategy) String() string {
	switch s {
	case BlockPartition:
		return "block"
	case RoundRobin:
		return "round-robin"
	}
	return fmt.Sprintf("PartitionStrategy(%d)", int(s))
}

// ParseStrategy maps a strategy name to its value
func ParseStrategy(name string) (PartitionStrategy, error) {
	for _, s := range []PartitionStrategy{BlockPartition, RoundRobin} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown partition strategy %q", name)
}

// BuildPartitions creates a partition layout
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if pb.NumNodes <= 0 {
		return nil, fmt.Errorf("invalid node count %d", pb.NumNodes)
	}

	// Determine number of partitions needed
	numPartitions, err := pb.calculateNumPartitions()
	if err != nil {
		return nil, err
	}

	// Partition the nodes
	nToP, err := pb.partitionNodes(numPartitions)
	if err != nil {
		return nil, err
	}

	return NewPartitionLayout(nToP)
}

// calculateNumPartitions determines the partition count
func (pb *PartitionBuilder) calculateNumPartitions() (int, error) {
	numPartitions := pb.NumPartitions
	if numPartitions <= 0 {
		if pb.TargetPartitionSize <= 0 {
			return 0, fmt.Errorf("either NumPartitions or TargetPartitionSize must be set")
		}
		numPartitions = int(math.Ceil(float64(pb.NumNodes) / float64(pb.TargetPartitionSize)))
	}

	if numPartitions > pb.NumNodes {
		return 0, fmt.Errorf("%d partitions for %d nodes leaves partitions empty",
			numPartitions, pb.NumNodes)
	}
	return numPartitions, nil
}

// partitionNodes assigns nodes to partitions
func (pb *PartitionBuilder) partitionNodes(numPartitions int) ([]int, error) {
	nToP := make([]int, pb.NumNodes)

	switch pb.Strategy {
	case BlockPartition:
		// Near equal consecutive blocks, the first NumNodes%numPartitions
		// blocks one node larger
		base, extra := pb.NumNodes/numPartitions, pb.NumNodes%numPartitions
		node := 0
		for p := 0; p < numPartitions; p++ {
			size := base
			if p < extra {
				size++
			}
			for i := 0; i < size; i++ {
				nToP[node] = p
				node++
			}
		}

	case RoundRobin:
		// Distribute nodes cyclically
		for i := 0; i < pb.NumNodes; i++ {
			nToP[i] = i % numPartitions
		}

	default:
		return nil, fmt.Errorf("unsupported partition strategy %s", pb.Strategy)
	}

	return nToP, nil
}

// PartitionStatistics computes load balance metrics
func (layout *PartitionLayout) PartitionStatistics() PartitionStats {
	stats := PartitionStats{
		NumPartitions: layout.NumPartitions,
		MinNodes:      math.MaxInt32,
		MaxNodes:      0,
		AvgNodes:      float64(layout.TotalNodes) / float64(layout.NumPartitions),
	}

	for _, p := range layout.Partitions {
		if p.NumNodes < stats.MinNodes {
			stats.MinNodes = p.NumNodes
		}
		if p.NumNodes > stats.MaxNodes {
			stats.MaxNodes = p.NumNodes
		}
	}

	stats.Imbalance = float64(stats.MaxNodes) / stats.AvgNodes

	return stats
}

type PartitionStats struct {
	NumPartitions int
	MinNodes      int
	MaxNodes      int
	AvgNodes      float64
	Imbalance     float64 // MaxNodes / AvgNodes
}
