// Package circuit implements the Algebraic Circuit (spec §4.1): a DAG of
// Source, Sink, AddGate and MulGate nodes that lowers to an R1CS system.
// Grounded on original_source/lib/zkp/algebraic_circuit.py, restructured
// onto the teacher's index-arena internal/dag package per spec §9's
// "arena of nodes with integer indices" design note.
package circuit

// Label names a tracked signal: its position in the witness vector is
// Index (1-based; index 0 is reserved for the constant 1 and is never
// allocated to a Label). Constants are never assigned a Label — they
// contribute directly to an R1CSExpression's constant term instead (spec
// §3: "constants use reserved index 0 and are untracked by the ELS").
type Label struct {
	Name  string
	Index int
}

// ELS is the Edge Label System: an ordered registry mapping signal names to
// witness-vector positions (spec §3: "ELS"). Grounded on
// EdgeLabelSystem.generate in algebraic_circuit.py.
type ELS struct {
	names []string
}

// NewELS returns an empty label registry.
func NewELS() *ELS { return &ELS{} }

// Generate allocates a fresh Label for name and returns it. The label's
// Index is its 1-based witness position (Len() after the call), index 0
// staying reserved for the constant 1.
func (e *ELS) Generate(name string) Label {
	idx := len(e.names) + 1
	e.names = append(e.names, name)
	return Label{Name: name, Index: idx}
}

// Len returns the number of tracked labels (excluding the reserved constant
// slot), i.e. the witness vector has Len()+1 entries.
func (e *ELS) Len() int { return len(e.names) }

// Name returns the signal name tracked at witness position idx (1-based).
func (e *ELS) Name(idx int) string { return e.names[idx-1] }
