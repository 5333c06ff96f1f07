// Package dsl implements the line-oriented lexer for the circuit DSL
// described in spec §6 ("DSL surface (for reference only; not part of the
// core)"). Grounded on original_source/lib/zkp/lexer.py's regex-per-line
// dispatch (NAME_RE/TEMPLATE_START_RE/INPUT_RE/OUTPUT_RE/ASSIGN_RE/
// COMPONENT_RE/MUL_RE), simplified to a single template with no
// nested component instantiation (spec treats the namespace/template
// machinery as external glue; the worked examples in spec §8 only ever
// need one flat template).
package dsl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zkdsl/circuit16/asg"
	"github.com/zkdsl/circuit16/circuit"
	"github.com/zkdsl/circuit16/field"
)

var (
	templateStartRe = regexp.MustCompile(`^template\s+([a-zA-Z0-9_.]+)\s*\(\)\s*\{?\s*$`)
	templateEndRe   = regexp.MustCompile(`^\}\s*$`)
	inputRe         = regexp.MustCompile(`^signal\s+input\s+([a-zA-Z0-9_.]+)\s*;?\s*$`)
	outputRe        = regexp.MustCompile(`^signal\s+output\s+([a-zA-Z0-9_.]+)\s*;?\s*$`)
	assignRe        = regexp.MustCompile(`^([a-zA-Z0-9_.]+)\s*<==\s*(.+?)\s*;?\s*$`)
	constrainRe     = regexp.MustCompile(`^([a-zA-Z0-9_.]+)\s*\*\s*([a-zA-Z0-9_.]+)\s*===\s*([a-zA-Z0-9_.]+)\s*;?\s*$`)
	mulRe           = regexp.MustCompile(`^([a-zA-Z0-9_.]+)\s*\*\s*([a-zA-Z0-9_.]+)$`)
	addRe           = regexp.MustCompile(`^([a-zA-Z0-9_.]+)\s*\+\s*([a-zA-Z0-9_.]+)$`)
)

// Template is the parsed form of one `template NAME() { ... }` block: an
// ordered statement list, lowered into an asg.Namespace by Parse.
type Template struct {
	Name string
	ns   *asg.Namespace
}

// Parse tokenizes and parses source line by line, returning the body of
// the single template it declares (spec's worked examples never nest
// templates or instantiate components, so Parse rejects a second
// `template` block rather than silently dropping it).
func Parse(source string) (*Template, error) {
	lines := strings.Split(source, "\n")
	var tmpl *Template

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := templateStartRe.FindStringSubmatch(line); m != nil {
			if tmpl != nil {
				return nil, fmt.Errorf("dsl:%d: nested/second template %q not supported", i+1, m[1])
			}
			tmpl = &Template{Name: m[1], ns: asg.NewNamespace(m[1])}
			continue
		}
		if templateEndRe.MatchString(line) {
			continue
		}
		if tmpl == nil {
			return nil, fmt.Errorf("dsl:%d: statement outside any template: %q", i+1, line)
		}

		switch {
		case inputRe.MatchString(line):
			m := inputRe.FindStringSubmatch(line)
			tmpl.ns.AddInput(m[1])

		case outputRe.MatchString(line):
			m := outputRe.FindStringSubmatch(line)
			tmpl.ns.AddOutput(m[1])

		case constrainRe.MatchString(line):
			// `a*b === c` (spec §9's "check constraint" syntax): folded into
			// a Mul gate pinned to c, per spec §9's open-question resolution.
			m := constrainRe.FindStringSubmatch(line)
			lhs, a, b := m[3], m[1], m[2]
			if err := wireMul(tmpl.ns, lhs, a, b); err != nil {
				return nil, fmt.Errorf("dsl:%d: %w", i+1, err)
			}

		case assignRe.MatchString(line):
			m := assignRe.FindStringSubmatch(line)
			lhs, rhs := m[1], strings.TrimSpace(m[2])
			if err := parseAssign(tmpl.ns, lhs, rhs); err != nil {
				return nil, fmt.Errorf("dsl:%d: %w", i+1, err)
			}

		default:
			return nil, fmt.Errorf("dsl:%d: unrecognized statement: %q", i+1, line)
		}
	}

	if tmpl == nil {
		return nil, fmt.Errorf("dsl: source declares no template")
	}
	return tmpl, nil
}

func parseAssign(ns *asg.Namespace, lhs, rhs string) error {
	if m := mulRe.FindStringSubmatch(rhs); m != nil {
		return wireMul(ns, lhs, m[1], m[2])
	}
	if m := addRe.FindStringSubmatch(rhs); m != nil {
		return wireAdd(ns, lhs, m[1], m[2])
	}
	return fmt.Errorf("dsl: unsupported right-hand side %q (only a*b or a+b)", rhs)
}

func wireMul(ns *asg.Namespace, lhs, a, b string) error {
	ns.AddMul(lhs)
	if err := ns.Set(lhs, a); err != nil {
		return err
	}
	return ns.Set(lhs, b)
}

func wireAdd(ns *asg.Namespace, lhs, a, b string) error {
	ns.AddAdd(lhs)
	if err := ns.Set(lhs, a); err != nil {
		return err
	}
	return ns.Set(lhs, b)
}

// BuildCircuit lowers the parsed template directly into a circuit.Circuit
// over field f (skipping asg's Template/Component instantiation machinery,
// since this package only ever parses one flat template).
func (t *Template) BuildCircuit(f field.Field) (*circuit.Circuit, map[string]int, error) {
	return t.ns.BuildCircuit(f)
}

// Namespace exposes the template's underlying namespace, e.g. for adding
// constants the DSL's literal syntax doesn't cover yet (spec's DSL surface
// is reference-only and this package does not implement numeric literals).
func (t *Template) Namespace() *asg.Namespace { return t.ns }
