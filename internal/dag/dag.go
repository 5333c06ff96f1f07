// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dag implements an arena-of-nodes DAG: nodes are plain integer
// indices and edges are tracked as parent/child index slices, so ownership
// stays with the arena rather than with entangled pointers. circuit.Circuit
// embeds a DAG to track Source/Sink/Gate wiring.
package dag

import (
	"golang.org/x/exp/slices"

	"github.com/zkdsl/circuit16/internal/debug"
)

// Node is an opaque payload associated with an arena slot. Callers normally
// store their own index alongside it (circuit.Circuit stores node kind and
// label out of band, keyed by the same index).
type Node int

// DAG is an arena of nodes with parent/child adjacency tracked by index.
type DAG struct {
	parents  [][]int
	children [][]int
	nodes    []Node
	nbNodes  int
}

// New allocates a DAG with room for nbNodes entries.
func New(nbNodes int) DAG {
	return DAG{
		parents:  make([][]int, nbNodes),
		children: make([][]int, nbNodes),
		nodes:    make([]Node, 0, nbNodes),
	}
}

// AddNode adds a node to the dag and returns its index.
func (dag *DAG) AddNode(node Node) (n int) {
	dag.nodes = append(dag.nodes, node)
	n = dag.nbNodes
	dag.nbNodes++
	return
}

// AddEdges records parents as the dependencies of nodeID, and registers
// nodeID as a child of each parent.
func (dag *DAG) AddEdges(nodeID int, parents []int) {
	dag.parents[nodeID] = append([]int(nil), parents...)
	for _, p := range parents {
		dag.children[p] = append(dag.children[p], nodeID)
	}
}

// Parents returns the parent indices of n.
func (dag *DAG) Parents(n int) []int { return dag.parents[n] }

// Children returns the child indices of n.
func (dag *DAG) Children(n int) []int { return dag.children[n] }

// NbNodes returns the number of nodes added so far.
func (dag *DAG) NbNodes() int { return dag.nbNodes }

// Levels returns, for each topological level l, the node indices whose
// dependencies are all contained in earlier levels. Unlike the scheduler
// this was adapted from, this walk is sequential: the spec this DAG backs
// has no concurrency requirement, so there is no worker pool to coordinate.
func (dag *DAG) Levels() [][]int {
	solved := make([]bool, dag.nbNodes)
	var levels [][]int

	remaining := dag.nbNodes
	for remaining > 0 {
		var level []int
		for n := 0; n < dag.nbNodes; n++ {
			if solved[n] {
				continue
			}
			ready := true
			for _, p := range dag.parents[n] {
				if !solved[p] {
					ready = false
					break
				}
			}
			if ready {
				level = append(level, n)
			}
		}

		if len(level) == 0 {
			if debug.Debug {
				panic("dag: no progress possible; graph is not acyclic")
			}
			break
		}

		slices.Sort(level)
		for _, n := range level {
			solved[n] = true
		}
		remaining -= len(level)
		levels = append(levels, level)
	}

	return levels
}
