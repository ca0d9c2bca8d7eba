// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwblocks"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(w string) hw.Part { return mux.NewPart(w) }

var mux = hw.PartSpec{
	Name:    "MUX",
	Inputs:  hw.Inputs{pA, pB, pSel},
	Outputs: hw.Outputs{pOut},
	Mount: func(s *hw.Socket) []hw.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return []hw.Component{func(c *hw.Circuit) {
			if c.Get(sel) {
				c.Set(out, c.Get(b))
			} else {
				c.Set(out, c.Get(a))
			}
		}}
	},
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(w string) hw.Part { return dmux.NewPart(w) }

var dmux = hw.PartSpec{
	Name:    "DMUX",
	Inputs:  hw.Inputs{pIn, pSel},
	Outputs: hw.Outputs{pA, pB},
	Mount: func(s *hw.Socket) []hw.Component {
		in, sel, a, b := s.Pin(pIn), s.Pin(pSel), s.Pin(pA), s.Pin(pB)
		return []hw.Component{func(c *hw.Circuit) {
			if c.Get(sel) {
				c.Set(a, false)
				c.Set(b, c.Get(in))
			} else {
				c.Set(a, c.Get(in))
				c.Set(b, false)
			}
		}}
	},
}

// MuxN returns a N-bits Mux.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(bits int) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "MUX" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			a, b, sel := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pSel)
			o := s.Bus(pOut, bits)
			return []hw.Component{
				func(c *hw.Circuit) {
					src := a
					if c.Get(sel) {
						src = b
					}
					for i := range o {
						c.Set(o[i], c.Get(src[i]))
					}
				}}
		}}).NewPart
}

// BufferN returns a N-bits buffer. Like any combinational part, it takes one
// simulation step to update its output.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in
//
func BufferN(bits int) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "BUFFER" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			return []hw.Component{func(c *hw.Circuit) {
				for i, p := range in {
					c.Set(out[i], c.Get(p))
				}
			}}
		}}).NewPart
}
