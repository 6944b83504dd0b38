package fvm

import (
	"errors"
	"fmt"
	"github.com/notargets/FVMetal/config"
	"github.com/notargets/FVMetal/logging"
	"github.com/notargets/FVMetal/material"
	"github.com/notargets/FVMetal/metrics"
	"log/slog"
)

var (
	// ErrNodeNotInRegion is returned when a node of another region is used
	ErrNodeNotInRegion = errors.New("fvm: node not in region")
	// ErrOwnedNode is returned when a ghost operation targets an owned node
	ErrOwnedNode = errors.New("fvm: node is owned by this worker")
	// ErrShortIterate is returned when a local vector does not cover the
	// local index of a node
	ErrShortIterate = errors.New("fvm: local vector shorter than local numbering")
)

// Region is the part of a metal region held by one worker
type Region struct {
	Name string

	Conductance    float64 // sigma used for pseudo capacitance and scaling [A/V/m]
	AuxResistance  float64 // lumped network resistance [Ohm]
	AuxCapacitance float64 // lumped network capacitance [F]
	ConnectedNodes int     // nodes sharing the lumped network
	// LowResistancePad disables the lumped and pseudo time terms
	LowResistancePad bool
	Temperature      float64 // ambient temperature [K]
	// TotalNodes is the node count of the whole region over all workers. Zero
	// means the nodes held by this worker.
	TotalNodes int

	nodes    []*Node
	owned    []*Node
	byGlobal map[int]*Node
	edges    []Edge

	law     *material.Binding
	cfg     config.Solver
	log     *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Region
type Option func(*Region)

// WithLogger sets the pass logger
func WithLogger(log *slog.Logger) Option {
	return func(r *Region) { r.log = log }
}

// WithMetrics sets the metrics collector
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Region) { r.metrics = c }
}

// NewRegion creates an empty region evaluating law with the solver settings
// cfg. cfg is expected to be validated.
func NewRegion(name string, law *material.Binding, cfg config.Solver, opts ...Option) *Region {
	r := &Region{
		Name:     name,
		byGlobal: make(map[int]*Node),
		law:      law,
		cfg:      cfg,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddNode adds an owned or ghost node
func (r *Region) AddNode(n *Node) error {
	if _, ok := r.byGlobal[n.GlobalIndex]; ok {
		return fmt.Errorf("region %s: node %d added twice", r.Name, n.GlobalIndex)
	}
	r.byGlobal[n.GlobalIndex] = n
	r.nodes = append(r.nodes, n)
	if n.Owned {
		r.owned = append(r.owned, n)
	}
	return nil
}

// Connect adds an edge between two nodes of the region
func (r *Region) Connect(n1, n2 *Node, distance, area float64) error {
	for _, n := range []*Node{n1, n2} {
		if !r.contains(n) {
			return fmt.Errorf("region %s: connect node %d: %w", r.Name, n.GlobalIndex, ErrNodeNotInRegion)
		}
	}
	r.edges = append(r.edges, Edge{N1: n1, N2: n2, Distance: distance, Area: area})
	return nil
}

func (r *Region) contains(n *Node) bool {
	return n != nil && r.byGlobal[n.GlobalIndex] == n
}

// Node returns the node with the given global index, or nil
func (r *Region) Node(global int) *Node { return r.byGlobal[global] }

// Nodes returns every node, owned and ghost, in insertion order
func (r *Region) Nodes() []*Node { return r.nodes }

// OwnedNodes returns the nodes this worker emits rows for
func (r *Region) OwnedNodes() []*Node { return r.owned }

// Edges returns the region edges
func (r *Region) Edges() []Edge { return r.edges }

// Material returns the bound material law
func (r *Region) Material() *material.Binding { return r.law }

// Config returns the solver settings
func (r *Region) Config() config.Solver { return r.cfg }

func (r *Region) totalNodes() int {
	if r.TotalNodes > 0 {
		return r.TotalNodes
	}
	return len(r.nodes)
}
