// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwblocks"
)

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w string) hw.Part {
	return dff.NewPart(w)
}

var dff = hw.PartSpec{
	Name:    "DFF",
	Inputs:  hw.Inputs{pIn},
	Outputs: hw.Outputs{pOut},
	Mount: func(s *hw.Socket) []hw.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var curOut bool
		return []hw.Component{
			func(c *hw.Circuit) {
				// raising edge?
				if c.AtTick() {
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	}}

// Register returns a N-bits register with clock enable and synchronous clear.
// The register holds zero until it is first cleared or loaded.
//
//	Inputs: in[bits], en, clr
//	Outputs: out[bits]
//	Function: if en { if clr { out(t) = reset } else { out(t) = in(t-1) } } else { out(t) = out(t-1) }
//
func Register(bits int, reset uint64) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "REGISTER" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pIn), pEn, pClr),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			en, clr := s.Pin(pEn), s.Pin(pClr)
			cur := make([]bool, bits)
			return []hw.Component{
				func(c *hw.Circuit) {
					if c.AtTick() && c.Get(en) {
						if c.Get(clr) {
							for i := range cur {
								cur[i] = i < 64 && reset&(1<<uint(i)) != 0
							}
						} else {
							for i, p := range in {
								cur[i] = c.Get(p)
							}
						}
					}
					for i, p := range out {
						c.Set(p, cur[i])
					}
				}}
		}}).NewPart
}
