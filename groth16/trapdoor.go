// Package groth16 implements the Groth16 CRS generator, prover, verifier
// and forger (spec §4.4-4.7), grounded on
// original_source/lib/zkp/groth16.py.
package groth16

import (
	"io"

	"github.com/zkdsl/circuit16/field"
)

// Trapdoor is the simulation trapdoor (alpha, beta, gamma, delta, tau) used
// to generate a CRS (spec §3: "Simulation trapdoor"). A real deployment
// must discard it immediately after CRS generation; this package never
// persists one.
type Trapdoor struct {
	Alpha, Beta, Gamma, Delta, Tau field.Element
}

// GenerateTrapdoor draws five distinct, non-zero elements of fr using r as
// an entropy source (crypto/rand.Reader in production, a seeded source in
// tests), mirroring SimulationTrapdoor.generate's "draw from Fr* until 5
// distinct values collected" loop.
func GenerateTrapdoor(fr field.Field, r io.Reader) (Trapdoor, error) {
	seen := make(map[string]bool, 5)
	vals := make([]field.Element, 0, 5)
	for len(vals) < 5 {
		v, err := fr.Random(r)
		if err != nil {
			return Trapdoor{}, err
		}
		key := v.BigInt().String()
		if seen[key] {
			continue
		}
		seen[key] = true
		vals = append(vals, v)
	}
	return Trapdoor{Alpha: vals[0], Beta: vals[1], Gamma: vals[2], Delta: vals[3], Tau: vals[4]}, nil
}
