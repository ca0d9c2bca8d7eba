// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwblocks"
)

// Decoder returns a binary to one-hot decoder. A selector value greater or
// equal to outputs sets no output. Selector bits past the 64th are ignored, so
// addrBits should not exceed 64.
//
//	Inputs: sel[addrBits]
//	Outputs: out[outputs]
//	Function: for i := range out { out[i] = sel == i }
//
func Decoder(addrBits, outputs int) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "DECODER" + strconv.Itoa(addrBits) + "x" + strconv.Itoa(outputs),
		Inputs:  bus(addrBits, pSel),
		Outputs: bus(outputs, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			sel, out := s.Bus(pSel, addrBits), s.Bus(pOut, outputs)
			return []hw.Component{func(c *hw.Circuit) {
				v := Uint64(c, sel)
				for i, p := range out {
					c.Set(p, uint64(i) == v)
				}
			}}
		}}).NewPart
}

// AnnullerN returns a N-bits annuller: it passes its input through when
// enabled and outputs zero otherwise.
//
//	Inputs: in[bits], en
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = en && in[i] }
//
func AnnullerN(bits int) hw.NewPartFn {
	return (&hw.PartSpec{
		Name:    "ANNULLER" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pIn), pEn),
		Outputs: bus(bits, pOut),
		Mount: func(s *hw.Socket) []hw.Component {
			in, en, out := s.Bus(pIn, bits), s.Pin(pEn), s.Bus(pOut, bits)
			return []hw.Component{func(c *hw.Circuit) {
				e := c.Get(en)
				for i, p := range in {
					c.Set(out[i], e && c.Get(p))
				}
			}}
		}}).NewPart
}
