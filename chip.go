// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec             // PartSpec for this chip
	parts    []*PartSpec // sub parts
	wr       *wiring
}

func (c *chip) mount(s *Socket) []Component {
	var cs []Component

	for i, p := range c.parts {
		// make a sub-socket where the part's pin names are mapped to pins in s.
		sub := newSocket(s.c)
		for _, k := range p.Inputs {
			if w, ok := c.wr.readers[pin{i, k}]; ok {
				sub.m[k] = s.PinOrNew(w)
			} else {
				// unconnected inputs are grounded
				sub.m[k] = cstFalse
			}
		}
		for _, k := range p.Outputs {
			if w, ok := c.wr.drivers[pin{i, k}]; ok {
				sub.m[k] = s.PinOrNew(w)
			} else {
				sub.m[k] = s.c.allocPin()
			}
		}
		cs = append(cs, p.Mount(sub)...)
	}
	return cs
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", In("a, b"), Out("out"), Parts{
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	})
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips:
//
//	xnor, err := Chip("XNOR", In("a, b"), Out("out"), Parts{
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	})
//
// Part inputs that are not connected are grounded. A part output drives at
// most one wire; a wire can feed any number of part inputs. The constant pins
// "true", "false" and "clk" are available in every chip.
//
func Chip(name string, inputs Inputs, outputs Outputs, parts Parts) (NewPartFn, error) {
	wr, err := newWiring(inputs, outputs)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	spcs := make([]*PartSpec, len(parts))

	for pnum, p := range parts {
		sp := p.PartSpec
		spcs[pnum] = sp
		for _, cn := range p.Conns {
			pp := pin{pnum, cn.PP}
			switch {
			case sp.isInput(cn.PP):
				if err := wr.addInput(pp, cn.CP); err != nil {
					return nil, errors.Wrap(err, sp.Name+"."+cn.PP+":"+cn.CP)
				}
			case sp.isOutput(cn.PP):
				if err := wr.addOutput(pp, cn.CP); err != nil {
					return nil, errors.Wrap(err, sp.Name+"."+cn.PP+":"+cn.CP)
				}
			default:
				return nil, errors.New("invalid pin name " + cn.PP + " for part " + sp.Name)
			}
		}
	}

	if err := wr.check(); err != nil {
		return nil, err
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
		},
		spcs,
		wr,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
