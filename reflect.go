// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwblocks

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// a tagged field of an Updater
type pinField struct {
	index int    // field index
	name  string // pin or bus name
	in    bool
	bits  int // bus size, 0 for a single pin
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// field name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Tagged fields must be exported. Pin fields must be of type int. Buses must
// be arrays of int. When mounted, each field is set to the pin number assigned
// to the corresponding pin.
//
// Every mount creates a new value of the Updater's type, so Updaters can
// safely hold state in other fields.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	fields := pinFields(typ)
	sp := &PartSpec{
		Name: typ.Name(),
	}
	for _, f := range fields {
		var pins []string
		if f.bits == 0 {
			pins = []string{f.name}
		} else {
			for i := 0; i < f.bits; i++ {
				pins = append(pins, BusPinName(f.name, i))
			}
		}
		if f.in {
			sp.Inputs = append(sp.Inputs, pins...)
		} else {
			sp.Outputs = append(sp.Outputs, pins...)
		}
	}
	sp.Mount = mountPart(typ, fields)
	return sp
}

func pinFields(typ reflect.Type) []pinField {
	var fields []pinField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.in = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bits = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		fields = append(fields, pf)
	}
	return fields
}

func mountPart(typ reflect.Type, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bits == 0 {
				fv.SetInt(int64(s.Pin(f.name)))
				continue
			}
			for i := 0; i < f.bits; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(f.name, i))))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
}
