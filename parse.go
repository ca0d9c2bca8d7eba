// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks

import (
	"strconv"

	"github.com/db47h/hwblocks/internal/hdl"
	"github.com/pkg/errors"
)

// Inputs is a slice of input pin names.
//
type Inputs []string

// Outputs is a slice of output pin names.
//
type Outputs []string

// MaxBusWidth is the maximum number of pins in a bus declaration or range.
//
const MaxBusWidth = 1 << 16

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

// ParseIOSpec parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
// A bus of size 0 expands to no pins. Buses larger than MaxBusWidth are
// rejected.
//
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	p := &hdl.Parser{Input: spec}
	for {
		it, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := it.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			if v.Index > MaxBusWidth {
				return nil, errors.Errorf("in %q at pos %d: bus size %d exceeds %d", spec, v.Pos+1, v.Index, MaxBusWidth)
			}
			for i := 0; i < v.Index; i++ {
				out = append(out, BusPinName(v.Name, i))
			}
		case hdl.PinRange:
			return nil, errors.Errorf("in %q at pos %d: bus ranges are not allowed in pin specifications", spec, v.Pos+1)
		}
	}
}

// IO is like ParseIOSpec but panics on error.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// In is a convenience wrapper around IO for chip and part inputs.
//
func In(spec string) Inputs { return Inputs(IO(spec)) }

// Out is a convenience wrapper around IO for chip and part outputs.
//
func Out(spec string) Outputs { return Outputs(IO(spec)) }

// A Connection connects the pin PP of a part to the pin CP of the host chip.
//
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2". Buses are referenced by index or range:
//
//	"a[0..3]=x[4..7], sel=s[1], in[0..7]=false"
//
// Ranges on both sides must have the same length unless the right hand side is
// a single pin, in which case all the left hand side pins are connected to it.
// Ranges can be descending: "a[0..3]=x[3..0]" reverses the bit order.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	p := &hdl.Parser{Input: c}
	for {
		it, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return conns, nil
		}
		a, ok := it.(hdl.PinAssignment)
		if !ok {
			return nil, errors.Errorf("in %q: missing '=' after pin %s", c, pinString(it))
		}
		for _, r := range []interface{}{a.LHS, a.RHS} {
			if v, ok := r.(hdl.PinRange); ok && rangeLen(v) > MaxBusWidth {
				return nil, errors.Errorf("in %q at pos %d: range %s exceeds %d pins", c, v.Pos+1, pinString(v), MaxBusWidth)
			}
		}
		lhs, rhs := expandPins(a.LHS), expandPins(a.RHS)
		switch {
		case len(lhs) == len(rhs):
			for i := range lhs {
				conns = append(conns, Connection{lhs[i], rhs[i]})
			}
		case len(rhs) == 1:
			for _, l := range lhs {
				conns = append(conns, Connection{l, rhs[0]})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch in pin mapping %s=%s", c, pinString(a.LHS), pinString(a.RHS))
		}
	}
}

func rangeLen(r hdl.PinRange) int {
	if r.Start <= r.End {
		return r.End - r.Start + 1
	}
	return r.Start - r.End + 1
}

func expandPins(it interface{}) []string {
	switch v := it.(type) {
	case hdl.Pin:
		return []string{v.Name}
	case hdl.PinIndex:
		return []string{BusPinName(v.Name, v.Index)}
	case hdl.PinRange:
		var r []string
		if v.Start <= v.End {
			for i := v.Start; i <= v.End; i++ {
				r = append(r, BusPinName(v.Name, i))
			}
		} else {
			for i := v.Start; i >= v.End; i-- {
				r = append(r, BusPinName(v.Name, i))
			}
		}
		return r
	}
	panic("unexpected parser item")
}

func pinString(it interface{}) string {
	switch v := it.(type) {
	case hdl.Pin:
		return v.Name
	case hdl.PinIndex:
		return BusPinName(v.Name, v.Index)
	case hdl.PinRange:
		return v.Name + "[" + strconv.Itoa(v.Start) + ".." + strconv.Itoa(v.End) + "]"
	}
	return "?"
}
