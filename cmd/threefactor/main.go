// Command threefactor runs the spec's worked example end to end: it parses
// the three-factor DSL template (w = x1*x2*x3), executes it through
// circuit/r1cs to obtain a witness, lowers a hand-specified instance-first
// R1CS for the same circuit through qap/groth16, and proves + verifies.
//
// The DSL's own circuit.BuildR1CS() lowering labels wires in dependency
// (topological) order, which leaves the circuit's output at the *last*
// witness position, not contiguous with the constant column the way
// Groth16's CRS split (spec §4.4: columns [1, I..., W...]) requires; the
// reference implementation's own Groth16 test fixtures hand-specify a
// separate instance-first R1CS for exactly this reason (see
// groth16/groth16_test.go's instanceFirstR1CS) rather than deriving it from
// circuit.BuildR1CS(). threeFactorR1CS below does the same for this CLI.
//
// Grounded on the teacher's cmd-style demo programs (e.g.
// other_examples' gnarking settlement_demo main.go): flag-driven
// stages, a CPU profile flag, and timing printed around each stage.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/curve/bn254backend"
	"github.com/zkdsl/circuit16/curve/toycurve"
	"github.com/zkdsl/circuit16/dsl"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/bn254field"
	"github.com/zkdsl/circuit16/field/smallprime"
	"github.com/zkdsl/circuit16/groth16"
	"github.com/zkdsl/circuit16/internal/logging"
	"github.com/zkdsl/circuit16/qap"
	"github.com/zkdsl/circuit16/r1cs"
)

const threeFactorSource = `
template ThreeFactor() {
  signal input x1
  signal input x2
  signal input x3
  signal output w
  mul1 <== x1*x2
  w <== mul1*x3
}
`

// threeFactorR1CS is the instance-first lowering of w = x1*x2*x3 (spec §8's
// worked example): witness slots [1, w, x1, x2, x3, mul1], constant column
// first, the single public instance w immediately after it.
func threeFactorR1CS(f field.Field) r1cs.System {
	zero, one := f.Zero(), f.One()
	row := func(set map[int]field.Element) []field.Element {
		v := make([]field.Element, 6)
		for i := range v {
			v[i] = zero
		}
		for i, c := range set {
			v[i] = c
		}
		return v
	}
	return r1cs.System{Constraints: []r1cs.Constraint{
		{A: row(map[int]field.Element{2: one}), B: row(map[int]field.Element{3: one}), C: row(map[int]field.Element{5: one})},
		{A: row(map[int]field.Element{5: one}), B: row(map[int]field.Element{4: one}), C: row(map[int]field.Element{1: one})},
	}}
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "threefactor:", err)
		os.Exit(1)
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config (backend, x1, x2, x3); defaults to the toy backend with x1=2,x2=3,x3=4")
	profilePath := flag.String("profile", "", "if set, write a CPU profile to this path")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	check(err)

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		check(err)
		defer f.Close()
		check(pprof.StartCPUProfile(f))
		defer pprof.StopCPUProfile()
	}

	tmpl, err := dsl.Parse(threeFactorSource)
	check(err)

	switch cfg.Backend {
	case "bn254":
		runBN254(tmpl, cfg)
	default:
		runToy(tmpl, cfg)
	}
}

func runToy(tmpl *dsl.Template, cfg config) {
	fr := smallprime.NewUint64(13)
	curveField := smallprime.NewUint64(43)

	g1Curve := toycurve.NewCurve(curveField, curveField.FromUint64(0), curveField.FromUint64(6))
	g1 := g1Curve.Point(curveField.FromUint64(13), curveField.FromUint64(15))

	gt := toycurve.NewExtField(curveField, []field.Element{
		curveField.FromUint64(6), curveField.FromUint64(0), curveField.FromUint64(0),
		curveField.FromUint64(0), curveField.FromUint64(0), curveField.FromUint64(0),
	}) // y^6 + 6
	g2Curve := toycurve.NewCurve(gt, gt.FromBase(curveField.FromUint64(0)), gt.FromBase(curveField.FromUint64(6)))
	g2x := gt.FromCoeffs([]field.Element{curveField.FromUint64(0), curveField.FromUint64(0), curveField.FromUint64(7)})
	g2y := gt.FromCoeffs([]field.Element{curveField.FromUint64(0), curveField.FromUint64(0), curveField.FromUint64(0), curveField.FromUint64(16)})
	g2 := g2Curve.Point(g2x, g2y)

	pairing := toycurve.NewPairing(g1Curve, g2Curve, gt, fr, g1, g2)
	// spec §8's domain M = {5, 7}, valid for the two-constraint three-factor
	// circuit over Fr = Z/13Z.
	domain := []field.Element{fr.FromUint64(5), fr.FromUint64(7)}
	run(tmpl, fr, pairing, domain, cfg)
}

func runBN254(tmpl *dsl.Template, cfg config) {
	fr := bn254field.New()
	pairing := bn254backend.NewPairing()
	run(tmpl, fr, pairing, nil, cfg)
}

func run(tmpl *dsl.Template, fr field.Field, pairing curve.Pairing, domain []field.Element, cfg config) {
	c, ids, err := tmpl.BuildCircuit(fr)
	check(err)
	check(c.Finalize())

	out, err := c.Execute(map[string]field.Element{
		"x1": fr.FromUint64(cfg.X1),
		"x2": fr.FromUint64(cfg.X2),
		"x3": fr.FromUint64(cfg.X3),
	})
	check(err)

	sys, err := c.BuildR1CS()
	check(err)
	ok, err := sys.IsValidAssignment(fr, out)
	check(err)
	if !ok {
		check(fmt.Errorf("circuit execution produced an unsatisfying witness"))
	}

	valueOf := func(name string) field.Element {
		return out[c.Label(ids[name]).Index]
	}
	outVal, x1, x2, x3, mul1 := valueOf("w"), valueOf("x1"), valueOf("x2"), valueOf("x3"), valueOf("mul1")

	instanceFirst := threeFactorR1CS(fr)
	witnessVec := []field.Element{fr.One(), outVal, x1, x2, x3, mul1}
	ok, err = instanceFirst.IsValidAssignment(fr, witnessVec)
	check(err)
	if !ok {
		check(fmt.Errorf("instance-first r1cs rejected the circuit's own witness"))
	}

	start := time.Now()
	q, err := qap.FromR1CS(fr, instanceFirst, domain)
	check(err)
	logging.Logger.Info().Dur("took", time.Since(start)).Msg("qap ready")

	st, err := groth16.GenerateTrapdoor(fr, rand.Reader)
	check(err)

	instances := []field.Element{outVal}
	witness := []field.Element{x1, x2, x3, mul1}

	start = time.Now()
	crs, err := groth16.GenerateCRS(q, pairing, st, len(instances))
	check(err)
	logging.Logger.Info().Dur("took", time.Since(start)).Msg("crs ready")

	start = time.Now()
	proof, err := groth16.Prove(crs, instances, witness, nil, nil, rand.Reader)
	check(err)
	logging.Logger.Info().Dur("took", time.Since(start)).Msg("proof ready")

	start = time.Now()
	valid, err := groth16.Verify(crs, proof, instances)
	check(err)
	logging.Logger.Info().Dur("took", time.Since(start)).Bool("valid", valid).Msg("verify done")

	fmt.Printf("backend=%s x1=%d x2=%d x3=%d w=%s verify=%v\n",
		cfg.Backend, cfg.X1, cfg.X2, cfg.X3, outVal.String(), valid)
}
