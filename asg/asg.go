// Package asg implements the Abstract Syntax Graph glue between the DSL
// parser and the compiler core (spec §6: "Parser contract"; spec explicitly
// places the namespace/template machinery out of the core's scope, as
// "name resolution only"). Grounded on original_source/lib/zkp/asg.py's
// Namespace/Reference/ASTObject/Input/Output/BinaryOperator/Template/
// Component hierarchy, simplified to a single flat namespace per built
// circuit (deep nested-template instantiation and its namespace-copying
// machinery, asg.py's Template.instantiate/Component.copy, are not needed
// to reproduce the spec's worked examples and are left unimplemented —
// spec §9 calls this glue layer "pure glue ... not part of the core
// specification beyond its output AST shape").
package asg

import (
	"fmt"
	"strings"

	"github.com/zkdsl/circuit16/circuit"
	"github.com/zkdsl/circuit16/field"
)

// Kind distinguishes the AST node variants the parser can emit (spec §6).
type Kind int

const (
	KindInput Kind = iota
	KindOutput
	KindMul
	KindAdd
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	case KindMul:
		return "Mul"
	case KindAdd:
		return "Add"
	default:
		return "Unknown"
	}
}

// Reference is a fully-qualified wire name, resolved against a Namespace
// (asg.py's Reference, minus the hierarchical relative-namespace search:
// the DSL's output AST here always carries fully-qualified names, per
// spec §9's "Namespace / reference resolution" design note).
type Reference struct {
	FQNS string
}

// Node is one wire declaration in the AST: an Input, Output, or binary
// operator (Mul/Add), wired to other nodes via in/out edges (asg.py's
// ASTObject/Input/Output/BinaryOperator).
type Node struct {
	Name     string
	Kind     Kind
	InEdges  []Reference
	OutEdges []Reference

	// Constant, if IsConstant, makes this node a literal source rather than
	// a free input (asg.py folds constants at the parser level; the core's
	// circuit.AddConstant mirrors that).
	IsConstant bool
	Constant   field.Element
}

// Set records a wire reference a -> b (asg.py's ASTObject.set): b is wired
// as an input of a, and a as an output of b.
func (ns *Namespace) Set(a, b string) error {
	an, ok := ns.objects[a]
	if !ok {
		return fmt.Errorf("asg: unknown wire %q", a)
	}
	bn, ok := ns.objects[b]
	if !ok {
		return fmt.Errorf("asg: unknown wire %q", b)
	}
	an.InEdges = append(an.InEdges, Reference{FQNS: b})
	bn.OutEdges = append(bn.OutEdges, Reference{FQNS: a})
	return nil
}

// Namespace is a flat registry of named wire declarations for one
// component instantiation (asg.py's Namespace, without nested child
// namespaces — nothing in the spec's worked examples needs more than one
// level).
type Namespace struct {
	name    string
	objects map[string]*Node
	order   []string // insertion order, for deterministic flatten/build
}

// NewNamespace returns an empty namespace named name.
func NewNamespace(name string) *Namespace {
	return &Namespace{name: name, objects: map[string]*Node{}}
}

func (ns *Namespace) add(n *Node) {
	if _, exists := ns.objects[n.Name]; !exists {
		ns.order = append(ns.order, n.Name)
	}
	ns.objects[n.Name] = n
}

// AddInput declares a free (non-constant) input wire named name.
func (ns *Namespace) AddInput(name string) { ns.add(&Node{Name: name, Kind: KindInput}) }

// AddConstant declares a constant input wire named name with value v.
func (ns *Namespace) AddConstant(name string, v field.Element) {
	ns.add(&Node{Name: name, Kind: KindInput, IsConstant: true, Constant: v})
}

// AddOutput declares an output wire named name.
func (ns *Namespace) AddOutput(name string) { ns.add(&Node{Name: name, Kind: KindOutput}) }

// AddMul declares a multiplication-gate wire named name.
func (ns *Namespace) AddMul(name string) { ns.add(&Node{Name: name, Kind: KindMul}) }

// AddAdd declares an addition-gate wire named name.
func (ns *Namespace) AddAdd(name string) { ns.add(&Node{Name: name, Kind: KindAdd}) }

// resolve looks a wire up by its (already fully-qualified, within this flat
// namespace) name.
func (ns *Namespace) resolve(ref Reference) (*Node, error) {
	name := ref.FQNS
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	n, ok := ns.objects[name]
	if !ok {
		return nil, fmt.Errorf("asg: unresolved reference %q", ref.FQNS)
	}
	return n, nil
}

// BuildCircuit lowers the namespace's wire graph into a circuit.Circuit
// (asg.py's Component.build_circuit / _flatten, collapsed since this
// package does not model nested Components).
//
// Gate nodes are built by repeated fixed-point passes over ns.order rather
// than a single linear one: a DSL assignment that reuses an output signal's
// name (e.g. `signal output w` followed by `w <== mul1*x3`, the natural way
// to write "this output is itself a product") replaces that name's entry in
// objects in place, but the name's position in order stays wherever its
// first declaration put it — which can precede the gates it now depends on.
// A single ordered pass would reject that as a forward reference; the
// circuit DAG itself has no such restriction (circuit.Finalize topologically
// re-levels regardless of insertion order), so gate building shouldn't
// either.
func (ns *Namespace) BuildCircuit(f field.Field) (*circuit.Circuit, map[string]int, error) {
	c := circuit.New(f)
	ids := make(map[string]int, len(ns.order))

	for _, name := range ns.order {
		n := ns.objects[name]
		switch n.Kind {
		case KindInput:
			var id int
			if n.IsConstant {
				id = c.AddConstant(n.Name, n.Constant)
			} else {
				id = c.AddInput(n.Name)
			}
			ids[n.Name] = id
		}
	}

	remaining := map[string]*Node{}
	for _, name := range ns.order {
		if n := ns.objects[name]; n.Kind == KindMul || n.Kind == KindAdd {
			remaining[name] = n
		}
	}

	for len(remaining) > 0 {
		progressed := false
		for _, name := range ns.order {
			n, pending := remaining[name]
			if !pending {
				continue
			}
			if len(n.InEdges) != 2 {
				return nil, nil, fmt.Errorf("asg: %s gate %q wants 2 in-edges, got %d", n.Kind, n.Name, len(n.InEdges))
			}
			x, err := ns.resolve(n.InEdges[0])
			if err != nil {
				return nil, nil, err
			}
			y, err := ns.resolve(n.InEdges[1])
			if err != nil {
				return nil, nil, err
			}
			xid, xok := ids[x.Name]
			yid, yok := ids[y.Name]
			if !xok || !yok {
				continue // dependency not yet built; retry on a later pass
			}
			kind := circuit.KindMul
			if n.Kind == KindAdd {
				kind = circuit.KindAdd
			}
			id, err := c.AddGate(kind, xid, yid)
			if err != nil {
				return nil, nil, err
			}
			ids[n.Name] = id
			delete(remaining, name)
			progressed = true
		}
		if !progressed {
			names := make([]string, 0, len(remaining))
			for name := range remaining {
				names = append(names, name)
			}
			return nil, nil, fmt.Errorf("asg: unresolvable gate dependency cycle among %v", names)
		}
	}

	for _, name := range ns.order {
		n := ns.objects[name]
		if n.Kind != KindOutput {
			continue
		}
		if len(n.InEdges) != 1 {
			return nil, nil, fmt.Errorf("asg: output %q wants 1 in-edge, got %d", n.Name, len(n.InEdges))
		}
		parent, err := ns.resolve(n.InEdges[0])
		if err != nil {
			return nil, nil, err
		}
		pid, ok := ids[parent.Name]
		if !ok {
			return nil, nil, fmt.Errorf("asg: output %q's parent %q not yet built", n.Name, parent.Name)
		}
		id, err := c.AddOutput(n.Name, pid)
		if err != nil {
			return nil, nil, err
		}
		ids[n.Name] = id
	}

	return c, ids, nil
}
