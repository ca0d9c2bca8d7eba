// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks

import (
	"sort"

	"github.com/pkg/errors"
)

// a pin is identified by the part it belongs to and its name in that part's interface
type pin struct {
	p    int
	name string
}

// a wire is a named signal within a chip.
type wire struct {
	driver  *pin // part output feeding the wire
	readers int  // number of part inputs reading the wire
}

type wiring struct {
	ins     map[string]bool // chip inputs
	outs    map[string]bool // chip outputs
	wires   map[string]*wire
	drivers map[pin]string // part output -> wire name
	readers map[pin]string // part input -> wire name
}

func newWiring(ins Inputs, outs Outputs) (*wiring, error) {
	wr := &wiring{
		ins:     make(map[string]bool, len(ins)),
		outs:    make(map[string]bool, len(outs)),
		wires:   make(map[string]*wire),
		drivers: make(map[pin]string),
		readers: make(map[pin]string),
	}
	for _, n := range ins {
		if isConstant(n) || wr.ins[n] {
			return nil, errors.New("invalid or duplicate chip input pin name " + n)
		}
		wr.ins[n] = true
	}
	for _, n := range outs {
		if isConstant(n) || wr.ins[n] || wr.outs[n] {
			return nil, errors.New("invalid or duplicate chip output pin name " + n)
		}
		wr.outs[n] = true
	}
	return wr, nil
}

func (wr *wiring) wire(name string) *wire {
	w := wr.wires[name]
	if w == nil {
		w = new(wire)
		wr.wires[name] = w
	}
	return w
}

// addInput connects the part input pin p to the wire named name.
func (wr *wiring) addInput(p pin, name string) error {
	if _, ok := wr.readers[p]; ok {
		return errors.New("input pin connected to more than one wire")
	}
	wr.readers[p] = name
	wr.wire(name).readers++
	return nil
}

// addOutput connects the part output pin p to the wire named name.
func (wr *wiring) addOutput(p pin, name string) error {
	switch {
	case isConstant(name):
		return errors.New("output pin connected to constant " + name + " input")
	case wr.ins[name]:
		return errors.New("chip input pin used as output")
	}
	if _, ok := wr.drivers[p]; ok {
		return errors.New("output pin connected to more than one wire")
	}
	w := wr.wire(name)
	if w.driver != nil {
		return errors.New("output pin already used as output")
	}
	w.driver = &p
	wr.drivers[p] = name
	return nil
}

// check reports wires that are read but never driven, driven but never read,
// and chip outputs that no part drives.
func (wr *wiring) check() error {
	names := make([]string, 0, len(wr.wires))
	for n := range wr.wires {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		w := wr.wires[n]
		if w.readers > 0 && w.driver == nil && !wr.ins[n] && !isConstant(n) {
			return errors.New("pin " + n + " not connected to any output")
		}
		if w.driver != nil && w.readers == 0 && !wr.outs[n] {
			return errors.New("pin " + n + " not connected to any input")
		}
	}
	names = names[:0]
	for n := range wr.outs {
		if w := wr.wires[n]; w == nil || w.driver == nil {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return errors.New("chip output pin " + names[0] + " not connected to any output")
	}
	return nil
}
