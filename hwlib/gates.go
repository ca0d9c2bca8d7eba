// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for hwblocks.
//
// Besides basic gates and I/O probes, it provides the parameterized blocks
// PipelineRegister and BinaryDemux, both as built-in parts and as chips
// composed from the smaller parts of this package (Register, MuxN, Decoder
// and AnnullerN).
//
package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwblocks"
)

// common pin names
const (
	pA     = "a"
	pB     = "b"
	pIn    = "in"
	pSel   = "sel"
	pOut   = "out"
	pEn    = "en"
	pClr   = "clr"
	pLoad  = "load"
	pPin   = "pin"
	pPout  = "pout"
	pValid = "valid"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = hw.BusPinName(n, j)
		}
	}
	return b
}

// rng returns a bus range "name[start..start+bits-1]" for use in connection
// strings.
func rng(name string, start, bits int) string {
	return name + "[" + strconv.Itoa(start) + ".." + strconv.Itoa(start+bits-1) + "]"
}

var notGate = hw.PartSpec{Name: "NOT", Inputs: hw.Inputs{pIn}, Outputs: hw.Outputs{pOut},
	Mount: func(s *hw.Socket) []hw.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hw.Component{
			func(c *hw.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hw.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *hw.Socket) []hw.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []hw.Component{
		func(c *hw.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b bool) bool) *hw.PartSpec {
	return &hw.PartSpec{
		Name:    name,
		Inputs:  gateIn,
		Outputs: gateOut,
		Mount:   gate(fn).mount,
	}
}

var (
	gateIn  = hw.Inputs{pA, pB}
	gateOut = hw.Outputs{pOut}

	and  = newGate("AND", func(a, b bool) bool { return a && b })
	nand = newGate("NAND", func(a, b bool) bool { return !(a && b) })
	or   = newGate("OR", func(a, b bool) bool { return a || b })
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hw.Part { return and.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) hw.Part { return nand.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hw.Part { return or.NewPart(w) }
