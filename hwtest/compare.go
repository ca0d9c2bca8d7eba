// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	hw "github.com/db47h/hwblocks"
	"github.com/db47h/hwblocks/hwlib"
)

const (
	// parts with up to maxExhaustive inputs are tested with every input combination
	maxExhaustive = 12
	// number of random input combinations tried for larger parts
	maxIter = 1 << maxExhaustive
)

func connString(in, out []string) string {
	var b strings.Builder
	for _, l := range [][]string{in, out} {
		for _, n := range l {
			if b.Len() > 0 {
				b.WriteRune(',')
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(n)
		}
	}
	return b.String()
}

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

func sameIO(t *testing.T, ps1, ps2 hw.Part) {
	t.Helper()
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatalf("%s has %d inputs, %s has %d", ps1.Name, len(ps1.Inputs), ps2.Name, len(ps2.Inputs))
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatalf("%s has %d outputs, %s has %d", ps1.Name, len(ps1.Outputs), ps2.Name, len(ps2.Outputs))
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[%d] = %q != ps2.Inputs[%d] = %q", i, ps1.Inputs[i], i, ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[%d] = %q != ps2.Outputs[%d] = %q", i, ps1.Outputs[i], i, ps2.Outputs[i])
		}
	}
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Parts with up to 12 inputs are fed every input combination, in counting
// order. Larger parts are fed 4096 random combinations.
//
// Inputs are changed at the beginning of the second half of each clock cycle
// and outputs are compared at the end of the first half of the next one, so
// tpc/2 must be greater than the longest combinational path of either part.
//
func ComparePart(t *testing.T, tpc uint, part1 hw.NewPartFn, part2 hw.NewPartFn) {
	t.Helper()

	ps1, ps2 := part1(""), part2("")
	sameIO(t, ps1, ps2)
	conns := connString(ps1.Inputs, ps1.Outputs)
	ps1, ps2 = part1(conns), part2(conns)

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	// build two wrappers with their own set of outputs
	wrap := func(name string, p hw.Part, k int) hw.NewPartFn {
		parts := hw.Parts{p}
		for i, o := range p.Outputs {
			n := i
			parts = append(parts, hwlib.Output(func(b bool) { outputs[n][k] = b })("in="+o))
		}
		w, err := hw.Chip(name, hw.Inputs(p.Inputs), nil, parts)
		if err != nil {
			t.Fatal(err)
		}
		return w
	}
	w1, w2 := wrap("wrapper1", ps1, 0), wrap("wrapper2", ps2, 1)

	var parts hw.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[k] })("out="+n))
	}
	cstr := connString(ps1.Inputs, nil)
	parts = append(parts, w1(cstr), w2(cstr))

	c, err := hw.NewCircuit(0, tpc, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteRune('=')
			if inputs[i] {
				b.WriteString("true")
			} else {
				b.WriteString("false")
			}
		}
		return fmt.Sprintf("\nAfter %d clock cycles, expected %s => %s=%v\nGot %v", c.Steps()/c.SPC(), b.String(), oname, ex, got)
	}
	check := func() {
		t.Helper()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	exhaustive := len(ps1.Inputs) <= maxExhaustive
	iter := maxIter
	if exhaustive {
		iter = 1 << uint(len(ps1.Inputs))
	}

	start := time.Now()

	c.Tick()

	// try all 0
	c.Tock()
	c.Tick()
	check()

	// try all 1
	for in := range inputs {
		inputs[in] = true
	}
	c.Tock()
	c.Tick()
	check()

	for i := 0; i < iter; i++ {
		for in := range inputs {
			if exhaustive {
				inputs[in] = i&(1<<uint(in)) != 0
			} else {
				inputs[in] = randBool()
			}
		}
		c.Tock()
		c.Tick()
		check()
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}
