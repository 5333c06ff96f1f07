package circuit

import (
	"time"

	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/internal/dag"
	"github.com/zkdsl/circuit16/internal/logging"
	"github.com/zkdsl/circuit16/r1cs"
)

// nodeData is the out-of-band bookkeeping kept per arena slot, mirroring
// the fields algebraic_circuit.py's Node hierarchy keeps per instance.
type nodeData struct {
	kind     Kind
	name     string // Source/Sink signal name
	constant field.Element
	isConst  bool
	parents  []int

	label Label // tracked signal label; zero value for Sink and constant Source
	expr  R1CSExpression
	value field.Element
}

// Circuit is the Algebraic Circuit (spec §4.1): a DAG of Source, Sink,
// AddGate and MulGate nodes, built incrementally then lowered to an R1CS
// system by Finalize/BuildR1CS. Grounded on algebraic_circuit.py's
// AlgebraicCircuit.
type Circuit struct {
	F         field.Field
	ELS       *ELS
	nodes     []nodeData
	finalized bool
	dag       dag.DAG
	constrs   []r1cs.Constraint
}

// New returns an empty circuit over field f.
func New(f field.Field) *Circuit {
	return &Circuit{F: f, ELS: NewELS()}
}

// AddInput adds a Source node representing an input signal named name,
// returning its node id.
func (c *Circuit) AddInput(name string) int {
	return c.addNode(nodeData{kind: KindSource, name: name})
}

// AddConstant adds a Source node pinned to constant value v. Constants are
// never assigned an ELS label (spec §3).
func (c *Circuit) AddConstant(name string, v field.Element) int {
	return c.addNode(nodeData{kind: KindSource, name: name, constant: v, isConst: true})
}

// AddOutput adds a Sink node aliasing the value of parent, returning its
// node id.
func (c *Circuit) AddOutput(name string, parent int) (int, error) {
	if err := c.checkNode(parent); err != nil {
		return 0, err
	}
	return c.addNode(nodeData{kind: KindSink, name: name, parents: []int{parent}}), nil
}

// AddGate adds an AddGate (kind == KindAdd) or MulGate (kind == KindMul)
// node combining x and y, returning its node id. Returns
// ErrConstantOnBothSides if both x and y are constant Source nodes.
func (c *Circuit) AddGate(kind Kind, x, y int) (int, error) {
	if kind != KindAdd && kind != KindMul {
		return 0, arityError{kind: kind, got: 2, want: 2}
	}
	if err := c.checkNode(x); err != nil {
		return 0, err
	}
	if err := c.checkNode(y); err != nil {
		return 0, err
	}
	if c.nodes[x].kind == KindSource && c.nodes[x].isConst &&
		c.nodes[y].kind == KindSource && c.nodes[y].isConst {
		return 0, constantOnBothSidesError{kind: kind}
	}
	return c.addNode(nodeData{kind: kind, parents: []int{x, y}}), nil
}

func (c *Circuit) checkNode(id int) error {
	if id < 0 || id >= len(c.nodes) {
		return unknownNodeError{id: id}
	}
	return nil
}

func (c *Circuit) addNode(n nodeData) int {
	c.finalized = false
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

// NbNodes returns the number of nodes added so far.
func (c *Circuit) NbNodes() int { return len(c.nodes) }

// Finalize assigns ELS labels, builds each node's R1CSExpression, and
// emits the R1CS constraint for every Add/Mul gate, walking the DAG in
// topological order (algebraic_circuit.py's Node.finalize).
func (c *Circuit) Finalize() error {
	start := time.Now()
	d := dag.New(len(c.nodes))
	for i, n := range c.nodes {
		d.AddNode(dag.Node(n.kind))
		d.AddEdges(i, n.parents)
	}
	c.dag = d

	width := c.ELS.Len() + 1 // may grow as gates allocate labels below
	var constraints []r1cs.Constraint

	for _, level := range d.Levels() {
		for _, id := range level {
			n := &c.nodes[id]
			switch n.kind {
			case KindSource:
				if n.isConst {
					n.expr = constantValueExpression(c.F, width, n.constant)
					continue
				}
				if n.label == (Label{}) {
					n.label = c.ELS.Generate(n.name)
					width = c.ELS.Len() + 1
				}
				n.expr = labelExpression(c.F, width, n.label)

			case KindSink:
				n.expr = c.nodes[n.parents[0]].expr

			case KindAdd:
				if len(n.parents) != 2 {
					return arityError{kind: KindAdd, got: len(n.parents), want: 2}
				}
				x, y := c.nodes[n.parents[0]], c.nodes[n.parents[1]]
				sum := x.expr.Add(y.expr)
				if n.label == (Label{}) {
					n.label = c.ELS.Generate("")
					width = c.ELS.Len() + 1
				}
				n.expr = labelExpression(c.F, width, n.label)
				constraints = append(constraints, r1cs.Constraint{
					A: sum.grow(width).Coeff,
					B: oneExpression(c.F, width).Coeff,
					C: n.expr.Coeff,
				})

			case KindMul:
				if len(n.parents) != 2 {
					return arityError{kind: KindMul, got: len(n.parents), want: 2}
				}
				x, y := c.nodes[n.parents[0]], c.nodes[n.parents[1]]
				if n.label == (Label{}) {
					n.label = c.ELS.Generate("")
					width = c.ELS.Len() + 1
				}
				n.expr = labelExpression(c.F, width, n.label)
				constraints = append(constraints, r1cs.Constraint{
					A: x.expr.grow(width).Coeff,
					B: y.expr.grow(width).Coeff,
					C: n.expr.Coeff,
				})
			}
		}
	}

	// Every constraint vector must share the final witness width.
	for i := range constraints {
		constraints[i].A = growTo(c.F, constraints[i].A, width)
		constraints[i].B = growTo(c.F, constraints[i].B, width)
		constraints[i].C = growTo(c.F, constraints[i].C, width)
	}

	c.constrs = constraints
	c.finalized = true
	logging.Logger.Debug().
		Int("nodes", len(c.nodes)).
		Int("constraints", len(constraints)).
		Dur("took", time.Since(start)).
		Msg("circuit finalized")
	return nil
}

func growTo(f field.Field, coeff []field.Element, n int) []field.Element {
	if len(coeff) >= n {
		return coeff
	}
	out := make([]field.Element, n)
	copy(out, coeff)
	for i := len(coeff); i < n; i++ {
		out[i] = f.Zero()
	}
	return out
}

// BuildR1CS returns the R1CS system the circuit lowers to, finalizing it
// first if necessary.
func (c *Circuit) BuildR1CS() (r1cs.System, error) {
	if !c.finalized {
		if err := c.Finalize(); err != nil {
			return r1cs.System{}, err
		}
	}
	return r1cs.System{Constraints: append([]r1cs.Constraint(nil), c.constrs...)}, nil
}

// Execute evaluates the circuit against concrete input values, returning the
// full witness vector (index 0 pinned to 1). Returns ErrMissingInput if an
// input Source has no supplied value.
func (c *Circuit) Execute(inputs map[string]field.Element) ([]field.Element, error) {
	if !c.finalized {
		if err := c.Finalize(); err != nil {
			return nil, err
		}
	}

	width := c.ELS.Len() + 1
	witness := make([]field.Element, width)
	witness[0] = c.F.One()

	for _, level := range c.dag.Levels() {
		for _, id := range level {
			n := &c.nodes[id]
			switch n.kind {
			case KindSource:
				if n.isConst {
					n.value = n.constant
					continue
				}
				v, ok := inputs[n.name]
				if !ok {
					return nil, missingInputError{name: n.name}
				}
				n.value = v
				witness[n.label.Index] = v

			case KindSink:
				n.value = c.nodes[n.parents[0]].value

			case KindAdd:
				x, y := c.nodes[n.parents[0]], c.nodes[n.parents[1]]
				n.value = x.value.Add(y.value)
				witness[n.label.Index] = n.value

			case KindMul:
				x, y := c.nodes[n.parents[0]], c.nodes[n.parents[1]]
				n.value = x.value.Mul(y.value)
				witness[n.label.Index] = n.value
			}
		}
	}

	return witness, nil
}

// Depth returns the number of topological levels in the circuit's DAG (the
// longest source-to-sink path length), finalizing it first if necessary.
func (c *Circuit) Depth() (int, error) {
	if !c.finalized {
		if err := c.Finalize(); err != nil {
			return 0, err
		}
	}
	return len(c.dag.Levels()), nil
}

// Output returns the current value of node id (valid after Execute).
func (c *Circuit) Output(id int) field.Element { return c.nodes[id].value }

// Label returns the ELS label assigned to node id (zero value if id names a
// Sink or a constant Source).
func (c *Circuit) Label(id int) Label { return c.nodes[id].label }
