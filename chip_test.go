// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks_test

import (
	"testing"

	hw "github.com/db47h/hwblocks"
	hl "github.com/db47h/hwblocks/hwlib"
)

func TestChip_errors(t *testing.T) {
	unkChip, err := hw.Chip("TESTCHIP", hw.In("a, b"), hw.Out("out"), hw.Parts{
		// chip input a is unused
		hl.Nand("a=b, b=b, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name  string
		in    hw.Inputs
		out   hw.Outputs
		parts hw.Parts
		err   string
	}{
		{"true_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=b, out=true"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:true: output pin connected to constant true input"},
		{"false_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=b, out=false"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:false: output pin connected to constant false input"},
		{"multi_out", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=b, out=a"),
			hl.Nand("a=a, b=b, out=out"),
		}, "NAND.out:a: chip input pin used as output"},
		{"multi_out2", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=b, out=x"),
			hl.Nand("a=a, b=b, out=x"),
			hl.Not("in=x, out=out"),
		}, "NAND.out:x: output pin already used as output"},
		{"fanout", hw.In("in"), hw.Out("a, b"), hw.Parts{
			hl.Or("a=in, b=in, out=a, out=b"),
		}, "OR.out:b: output pin connected to more than one wire"},
		{"multi_in", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, a=b, out=out"),
		}, "NAND.a:b: input pin connected to more than one wire"},
		{"no_output", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=wx, out=out"),
		}, "pin wx not connected to any output"},
		{"no_input", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=b, out=foo"),
			hl.Nand("a=a, b=b, out=out"),
		}, "pin foo not connected to any input"},
		{"dup_in", hw.In("a, a"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=a, out=out"),
		}, "dup_in: invalid or duplicate chip input pin name a"},
		{"cst_in", hw.In("a, clk"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, b=a, out=out"),
		}, "cst_in: invalid or duplicate chip input pin name clk"},
		{"dup_out", hw.In("a, b"), hw.Out("a"), hw.Parts{
			hl.Nand("a=a, b=b, out=x"),
			hl.Not("in=x, out=a"),
		}, "dup_out: invalid or duplicate chip output pin name a"},
		{"unconnected_in", hw.In("a, b"), nil, hw.Parts{}, ""},
		{"undriven_out", hw.In("a, b"), hw.Out("out"), hw.Parts{}, "chip output pin out not connected to any output"},
		{"undriven_out2", hw.In("a"), hw.Out("b, c"), hw.Parts{
			hl.Not("in=a, out=b"),
		}, "chip output pin c not connected to any output"},
		{"undriven_bus", hw.In("a"), hw.Out("o[3]"), hw.Parts{
			hl.Not("in=a, out=o[0]"),
			hl.Not("in=a, out=o[2]"),
		}, "chip output pin o[1] not connected to any output"},
		{"unknown_pin", hw.In("a, b"), hw.Out("out"), hw.Parts{
			hl.Nand("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part NAND"},
		{"unknown_pin", hw.In("a, b"), hw.Out("out"), hw.Parts{
			unkChip("a=a, typo=b, out=out"),
		}, "invalid pin name typo for part TESTCHIP"},
		{"unknown_pin", hw.In("a, b"), hw.Out("out"), hw.Parts{
			unkChip("a=a, b=b, out=out"),
		}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := hw.Chip(d.name, d.in, d.out, d.parts)
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				t.Errorf("Got error %q, expected %q", err, d.err)
				return
			}
		})
	}
}

func TestChip_omitted_pins(t *testing.T) {
	var a, b, c, tr, f, o0, o1 int
	dummy := (&hw.PartSpec{
		Name:    "dummy",
		Inputs:  hw.In("a, b, c, t, f"),
		Outputs: hw.Out("o0, o1"),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, c, tr, f, o0, o1 = s.Pin("a"), s.Pin("b"), s.Pin("c"), s.Pin("t"), s.Pin("f"), s.Pin("o0"), s.Pin("o1")
			return nil
		}}).NewPart
	// this is just to add another layer of testing.
	// inspecting o0 and o1 shows that distinct wires were allocated for wo0 and wo1
	wrapper, err := hw.Chip("wrapper", hw.In("wa, wb"), hw.Out("wo0, wo1"), hw.Parts{
		dummy("a=wa, c=clk, t=true, f=false, o0=wo0, o1=wo1"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}

	cc, err := hw.NewCircuit(0, 0, hw.Parts{wrapper("")})
	if err != nil {
		t.Fatal(err)
	}
	defer cc.Dispose()

	if a != 0 || b != 0 || f != 0 { // 0 = cstFalse
		t.Errorf("a = %v, b = %v, f = %v, all must be 0", a, b, f)
	}
	if tr != 1 { // 1 = cstTrue
		t.Errorf("t = %v, must be 1", tr)
	}
	if c != 2 { // 2 = cstClk
		t.Errorf("c = %v, must be 2", c)
	}
	if o0 < 3 || o1 < 3 || o0 == o1 { // 3 = cstCount
		t.Errorf("o0 = %v, o1 = %v, both must be >= 3 and distinct", o0, o1)
	}
}

// A wire driven by a part output can feed any number of inputs, including
// parts reading back a chip output.
func TestChip_fanout_to_inputs(t *testing.T) {
	gate, err := hw.Chip("FANOUT", hw.In("in"), hw.Out("a, b, bus[2]"), hw.Parts{
		hl.Not("in=in, out=a"),
		hl.Not("in=a, out=b"),
		hl.Or("a=a, b=b, out=bus[0]"),
		hl.And("a=a, b=b, out=bus[1]"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	wrapper, err := hw.Chip("FANOUT_Wrapper", hw.In("in"), hw.Out("o[4]"), hw.Parts{
		gate("in=in, a=o[0], b=o[1], bus[0..1]=o[2..3]"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	var in bool
	var out uint64
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Input(func() bool { return in })("out=in"),
		wrapper("in=in, o[0..3]=wrapOut[0..3]"),
		hl.OutputN(4, func(v uint64) { out = v })("in[0..3]=wrapOut[0..3]"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	defer c.Dispose()

	c.TickTock()
	if out != 0x5 { // a = 1, b = 0, or = 1, and = 0
		t.Fatalf("out = %#x != 0x5", out)
	}
	in = true
	c.TickTock()
	if out != 0x6 { // a = 0, b = 1, or = 1, and = 0
		t.Fatalf("out = %#x != 0x6", out)
	}
}
