// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks_test

import (
	"testing"

	hw "github.com/db47h/hwblocks"
	hl "github.com/db47h/hwblocks/hwlib"
	"github.com/db47h/hwblocks/hwtest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTPC = 16

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func Test_gate_custom(t *testing.T) {
	and, err := hw.Chip("AND", hw.In("a, b"), hw.Out("out"),
		hw.Parts{
			hl.Nand("a=a, b=b, out=nand"),
			hl.Nand("a=nand, b=nand, out=out"),
		})
	if err != nil {
		t.Fatal(err)
	}
	or, err := hw.Chip("OR", hw.In("a, b"), hw.Out("out"),
		hw.Parts{
			hl.Nand("a=a, b=a, out=notA"),
			hl.Nand("a=b, b=b, out=notB"),
			hl.Nand("a=notA, b=notB, out=out"),
		})
	if err != nil {
		t.Fatal(err)
	}
	not, err := hw.Chip("NOT", hw.In("in"), hw.Out("out"),
		hw.Parts{
			hl.Nand("a=in, b=in, out=out"),
		})
	if err != nil {
		t.Fatal(err)
	}
	mux, err := hw.Chip("MUX", hw.In("a, b, sel"), hw.Out("out"), hw.Parts{
		hl.Not("in=sel, out=notSel"),
		hl.And("a=a, b=notSel, out=w0"),
		hl.And("a=b, b=sel, out=w1"),
		hl.Or("a=w0, b=w1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	dmux, err := hw.Chip("DMUX", hw.In("in, sel"), hw.Out("a, b"), hw.Parts{
		hl.Not("in=sel, out=notSel"),
		hl.And("a=in, b=notSel, out=a"),
		hl.And("a=in, b=sel, out=b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name   string
		custom hw.NewPartFn
		ref    hw.NewPartFn
	}{
		{"AND", and, hl.And},
		{"OR", or, hl.Or},
		{"NOT", not, hl.Not},
		{"MUX", mux, hl.Mux},
		{"DMUX", dmux, hl.DMux},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			hwtest.ComparePart(t, 8, d.ref, d.custom)
		})
	}
}

// nor is a custom NOR gate.
var nor = (&hw.PartSpec{
	Name:    "NOR",
	Inputs:  hw.In("a, b"),
	Outputs: hw.Out("out"),
	Mount: func(s *hw.Socket) []hw.Component {
		a, b, out := s.Pin("a"), s.Pin("b"), s.Pin("out")
		return []hw.Component{func(c *hw.Circuit) {
			c.Set(out, !(c.Get(a) || c.Get(b)))
		}}
	}}).NewPart

// Test a basic clock with a Nor gate.
//
// The purpose of this test is to catch changes in propagation delays
// from Inputs and Outputs as well as testing loops between input and outputs.
//
// Clocks should be implemented as custom components or inputs. Really.
//
func Test_clock(t *testing.T) {
	var disable, tick bool

	check := func(v bool) {
		t.Helper()
		if tick != v {
			t.Errorf("expected %v, got %v", v, tick)
		}
	}
	// we could implement the clock directly as a Nor in the circuit (with no less gate delays)
	// but we wrap it into a stand-alone chip in order to add a layer complexity
	// for testing purposes.
	clk, err := hw.Chip("CLK", hw.In("disable"), hw.Out("tick"), hw.Parts{
		nor("a=disable, b=tick, out=tick"),
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Input(func() bool { return disable })("out=disable"),
		clk("disable=disable, tick=out"),
		hl.Output(func(out bool) { tick = out })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// we have two wires: "disable" and "out".
	// note that Output("out", ...) is delayed by one step after the Nor updates it.

	disable = true
	c.Step()
	check(false)
	c.Step()
	// this is an expected signal change appearing in the first couple of steps due to signal propagation delay
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(false)

	disable = false
	c.Step()
	check(false)
	c.Step()
	check(false)
	c.Step()
	// the clock starts ticking now.
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(true)
	disable = true
	c.Step()
	check(false)
	c.Step()
	check(true)
	c.Step()
	// the clock stops ticking now.
	check(false)
	c.Step()
	check(false)
}

func TestNewCircuit(t *testing.T) {
	_, err := hw.NewCircuit(0, testTPC, nil)
	assert.EqualError(t, err, "empty part list")

	_, err = hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Nand("a=true, b=true, out=x"),
	})
	assert.EqualError(t, err, "failed to create chip wrapper: pin x not connected to any input")

	td := []struct {
		spc, exp uint
	}{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {5, 8}, {8, 8}, {9, 16},
	}
	for _, d := range td {
		c, err := hw.NewCircuit(1, d.spc, hw.Parts{hl.Not("in=false, out=x"), hl.Output(func(bool) {})("in=x")})
		require.NoError(t, err)
		assert.Equal(t, d.exp, c.SPC(), "stepsPerCycle %d", d.spc)
		assert.Equal(t, 3, c.Size()) // including the clock
		c.Dispose()
	}
}

func TestCircuit_clock(t *testing.T) {
	var clk []bool
	c, err := hw.NewCircuit(3, 8, hw.Parts{
		hl.Output(func(v bool) { clk = append(clk, v) })("in=clk"),
	})
	require.NoError(t, err)
	defer c.Dispose()

	assert.True(t, c.AtTick())
	assert.False(t, c.AtTock())
	c.Tick()
	assert.Equal(t, uint(4), c.Steps())
	assert.False(t, c.AtTick())
	assert.True(t, c.AtTock())
	c.Tock()
	assert.Equal(t, uint(8), c.Steps())
	assert.True(t, c.AtTick())
	c.TickTock()
	assert.Equal(t, uint(16), c.Steps())
	exp := []bool{true, true, true, true, false, false, false, false}
	assert.Equal(t, append(exp, exp...), clk)
}
