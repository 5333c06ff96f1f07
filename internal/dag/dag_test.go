package dag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDAGEdges(t *testing.T) {
	assert := require.New(t)

	// A ──► B ──► C
	// └───────────┘
	const (
		A Node = iota
		B
		C
		nbNodes
	)
	d := New(int(nbNodes))
	a := d.AddNode(A)
	b := d.AddNode(B)
	d.AddEdges(b, []int{a})
	c := d.AddNode(C)
	d.AddEdges(c, []int{a, b})

	assert.Equal(0, len(d.Parents(a)))
	assert.Equal(1, len(d.Parents(b)))
	assert.Equal(2, len(d.Parents(c)))
	assert.Equal(a, d.Parents(b)[0])
	assert.Equal(b, d.Parents(c)[1])

	assert.Equal(2, len(d.Children(a)))
	assert.Equal(1, len(d.Children(b)))
	assert.Equal(0, len(d.Children(c)))
}

func TestDAGLevelsFork(t *testing.T) {
	assert := require.New(t)

	// A     B     C
	// │     │     │
	// │     ▼     │
	// │     D ◄───┘
	// │     │
	// │     ▼
	// └────►E
	const (
		A Node = iota
		B
		C
		D
		E
		nbNodes
	)

	d := New(int(nbNodes))
	a := d.AddNode(A)
	b := d.AddNode(B)
	c := d.AddNode(C)
	dd := d.AddNode(D)
	d.AddEdges(dd, []int{b, c})
	e := d.AddNode(E)
	d.AddEdges(e, []int{a, b, c, dd})

	levels := d.Levels()
	assert.Equal(3, len(levels))
	assert.Equal([]int{a, b, c}, levels[0])
	assert.Equal([]int{dd}, levels[1])
	assert.Equal([]int{e}, levels[2])
}
