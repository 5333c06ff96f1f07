package groth16

import (
	"encoding"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/zkdsl/circuit16/curve"
)

// Proof and CRS serialize over the wire via CBOR (github.com/fxamacker/cbor/v2),
// mirroring the teacher's gnarkio.WriterRawTo/ReaderFrom convention in
// backend/groth16/groth16.go. Although spec.md's Non-goals exclude
// persisting *intermediate* artifacts, the CRS and a Proof are final
// artifacts any real deployment ships to disk or over a wire.
//
// Point marshaling goes through encoding.BinaryMarshaler/BinaryUnmarshaler
// rather than a bespoke interface, so any curve.Point implementation that
// already satisfies the stdlib contract (as curve/bn254backend's wrapped
// gnark-crypto points do) works here for free. curve/toycurve deliberately
// does not implement it: it exists only to reproduce hand-computed test
// vectors and is never meant to leave the process.

// FormatVersion tags the CBOR wire format Proof/CRS encode into. Bumping
// the major component signals an incompatible layout change; ReadFrom
// rejects anything with a different major version.
var FormatVersion = semver.MustParse("1.0.0")

func checkFormatVersion(wire string) error {
	v, err := semver.Parse(wire)
	if err != nil {
		return fmt.Errorf("groth16: unparseable format version %q: %w", wire, err)
	}
	if v.Major != FormatVersion.Major {
		return fmt.Errorf("groth16: incompatible wire format %s, this binary supports %d.x.x", v, FormatVersion.Major)
	}
	return nil
}

type wireProof struct {
	Version string
	A, C, B []byte
}

// WriteTo CBOR-encodes the proof's three points.
func (p Proof) WriteTo(w io.Writer) (int64, error) {
	a, err := marshalPoint(p.A)
	if err != nil {
		return 0, err
	}
	c, err := marshalPoint(p.C)
	if err != nil {
		return 0, err
	}
	b, err := marshalPoint(p.B)
	if err != nil {
		return 0, err
	}
	data, err := cbor.Marshal(wireProof{Version: FormatVersion.String(), A: a, C: c, B: b})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom decodes into the proof's existing A/C/B points in place, so
// p.A/p.C/p.B must already hold zero-value instances of the caller's
// concrete Point type (e.g. &bn254backend.G1Point{}) before calling.
func (p *Proof) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	var wire wireProof
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return int64(len(data)), err
	}
	if err := checkFormatVersion(wire.Version); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(p.A, wire.A); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(p.C, wire.C); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(p.B, wire.B); err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), nil
}

type wireCRS struct {
	Version      string
	NumInstances int
	G1Alpha      []byte
	G1Beta       []byte
	G1Delta      []byte
	G1Powers     [][]byte
	G1Instance   [][]byte
	G1Witness    [][]byte
	G1HBasis     [][]byte
	G2Beta       []byte
	G2Gamma      []byte
	G2Delta      []byte
	G2Powers     [][]byte
}

// WriteTo CBOR-encodes every group element in the CRS. The QAP (a function
// of the public circuit only, not the trapdoor) is not serialized here:
// callers reconstruct it from the public circuit and re-attach it after
// ReadFrom.
func (c CRS) WriteTo(w io.Writer) (int64, error) {
	wire := wireCRS{Version: FormatVersion.String(), NumInstances: c.NumInstances}
	var err error
	if wire.G1Alpha, err = marshalPoint(c.G1.Alpha); err != nil {
		return 0, err
	}
	if wire.G1Beta, err = marshalPoint(c.G1.Beta); err != nil {
		return 0, err
	}
	if wire.G1Delta, err = marshalPoint(c.G1.Delta); err != nil {
		return 0, err
	}
	if wire.G1Powers, err = marshalPoints(c.G1.PowersOfTau); err != nil {
		return 0, err
	}
	if wire.G1Instance, err = marshalPoints(c.G1.Instance); err != nil {
		return 0, err
	}
	if wire.G1Witness, err = marshalPoints(c.G1.Witness); err != nil {
		return 0, err
	}
	if wire.G1HBasis, err = marshalPoints(c.G1.HBasis); err != nil {
		return 0, err
	}
	if wire.G2Beta, err = marshalPoint(c.G2.Beta); err != nil {
		return 0, err
	}
	if wire.G2Gamma, err = marshalPoint(c.G2.Gamma); err != nil {
		return 0, err
	}
	if wire.G2Delta, err = marshalPoint(c.G2.Delta); err != nil {
		return 0, err
	}
	if wire.G2Powers, err = marshalPoints(c.G2.PowersOfTau); err != nil {
		return 0, err
	}

	data, err := cbor.Marshal(wire)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func marshalPoint(p curve.Point) ([]byte, error) {
	m, ok := p.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("groth16: point type %T does not support binary marshaling", p)
	}
	return m.MarshalBinary()
}

func marshalPoints(pts []curve.Point) ([][]byte, error) {
	out := make([][]byte, len(pts))
	for i, p := range pts {
		b, err := marshalPoint(p)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func unmarshalPoint(p curve.Point, data []byte) error {
	u, ok := p.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("groth16: point type %T does not support binary unmarshaling", p)
	}
	return u.UnmarshalBinary(data)
}

func unmarshalPoints(newG1 func() curve.Point, data [][]byte) ([]curve.Point, error) {
	out := make([]curve.Point, len(data))
	for i, b := range data {
		p := newG1()
		if err := unmarshalPoint(p, b); err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// ReadFrom decodes a CRS written by WriteTo. Since curve.Point is an
// interface, the caller supplies newG1/newG2 factories returning a fresh
// zero-value point of its concrete backend type (e.g.
// func() curve.Point { return &bn254backend.G1Point{} }) — the same
// per-backend-type convention Proof.ReadFrom documents, generalized to
// CRS's point slices. The QAP is not part of the wire format (see WriteTo);
// callers re-attach it after ReadFrom returns.
func (c *CRS) ReadFrom(pairing curve.Pairing, newG1, newG2 func() curve.Point, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	var wire wireCRS
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return int64(len(data)), err
	}
	if err := checkFormatVersion(wire.Version); err != nil {
		return int64(len(data)), err
	}

	c.NumInstances = wire.NumInstances
	c.Pairing = pairing

	g1Alpha, g1Beta, g1Delta := newG1(), newG1(), newG1()
	if err := unmarshalPoint(g1Alpha, wire.G1Alpha); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(g1Beta, wire.G1Beta); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(g1Delta, wire.G1Delta); err != nil {
		return int64(len(data)), err
	}
	g1Powers, err := unmarshalPoints(newG1, wire.G1Powers)
	if err != nil {
		return int64(len(data)), err
	}
	g1Instance, err := unmarshalPoints(newG1, wire.G1Instance)
	if err != nil {
		return int64(len(data)), err
	}
	g1Witness, err := unmarshalPoints(newG1, wire.G1Witness)
	if err != nil {
		return int64(len(data)), err
	}
	g1HBasis, err := unmarshalPoints(newG1, wire.G1HBasis)
	if err != nil {
		return int64(len(data)), err
	}
	c.G1 = CRSG1{
		Alpha: g1Alpha, Beta: g1Beta, Delta: g1Delta,
		PowersOfTau: g1Powers, Instance: g1Instance, Witness: g1Witness, HBasis: g1HBasis,
	}

	g2Beta, g2Gamma, g2Delta := newG2(), newG2(), newG2()
	if err := unmarshalPoint(g2Beta, wire.G2Beta); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(g2Gamma, wire.G2Gamma); err != nil {
		return int64(len(data)), err
	}
	if err := unmarshalPoint(g2Delta, wire.G2Delta); err != nil {
		return int64(len(data)), err
	}
	g2Powers, err := unmarshalPoints(newG2, wire.G2Powers)
	if err != nil {
		return int64(len(data)), err
	}
	c.G2 = CRSG2{Beta: g2Beta, Gamma: g2Gamma, Delta: g2Delta, PowersOfTau: g2Powers}

	return int64(len(data)), nil
}
