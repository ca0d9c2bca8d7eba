// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/big"
	"strconv"

	hw "github.com/db47h/hwblocks"
)

// Uint64 returns the pins as an uint64. Pin 0 is lsb. Pins past the 64th are
// ignored.
//
func Uint64(c *hw.Circuit, pins []int) uint64 {
	var out uint64
	for bit := range pins {
		if bit < 64 && c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SetUint64 sets the pins to the given uint64 value. Pins past the 64th are
// cleared.
//
func SetUint64(c *hw.Circuit, pins []int, v uint64) {
	for bit := range pins {
		c.Set(pins[bit], bit < 64 && v&(1<<uint(bit)) != 0)
	}
}

// Vector returns the pins as a packed bit vector of arbitrary width. Pin 0 is
// lsb.
//
func Vector(c *hw.Circuit, pins []int) *big.Int {
	v := new(big.Int)
	for bit := range pins {
		if c.Get(pins[bit]) {
			v.SetBit(v, bit, 1)
		}
	}
	return v
}

// SetVector sets the pins to the given packed bit vector.
//
func SetVector(c *hw.Circuit, pins []int, v *big.Int) {
	for bit := range pins {
		c.Set(pins[bit], v.Bit(bit) != 0)
	}
}

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Input",
		Inputs:  nil,
		Outputs: hw.Outputs{pOut},
		Mount: func(s *hw.Socket) []hw.Component {
			pin := s.Pin(pOut)
			return []hw.Component{
				func(c *hw.Circuit) {
					c.Set(pin, f())
				},
			}
		},
	}
	return p.NewPart
}

// Output creates an output or probe. The fn function is
// called with the named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) hw.NewPartFn {
	p := &hw.PartSpec{
		Name:    "Output",
		Inputs:  hw.Inputs{pIn},
		Outputs: nil,
		Mount: func(s *hw.Socket) []hw.Component {
			in := s.Pin(pIn)
			return []hw.Component{
				func(c *hw.Circuit) { f(c.Get(in)) },
			}
		},
	}
	return p.NewPart
}

// InputN creates an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() uint64) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Inputs:  nil,
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			pins := s.Bus(pOut, bits)
			return []hw.Component{func(c *hw.Circuit) {
				SetUint64(c, pins, f())
			}}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(uint64)) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "OUTPUT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: nil,
		Mount: func(s *hw.Socket) []hw.Component {
			pins := s.Bus(pIn, bits)
			return []hw.Component{func(c *hw.Circuit) {
				f(Uint64(c, pins))
			}}
		}}).NewPart
}
