// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hw "github.com/db47h/hwblocks"
	hl "github.com/db47h/hwblocks/hwlib"
	"github.com/db47h/hwblocks/hwtest"
)

func TestMuxN(t *testing.T) {
	m, err := hw.Chip("myMux4", hw.In("a[4], b[4], sel"), hw.Out("out[4]"), hw.Parts{
		hl.Mux("a=a[0], b=b[0], sel=sel, out=out[0]"),
		hl.Mux("a=a[1], b=b[1], sel=sel, out=out[1]"),
		hl.Mux("a=a[2], b=b[2], sel=sel, out=out[2]"),
		hl.Mux("a=a[3], b=b[3], sel=sel, out=out[3]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.MuxN(4), m)
}

func TestBufferN(t *testing.T) {
	b, err := hw.Chip("myBuffer3", hw.In("in[3]"), hw.Out("out[3]"), hw.Parts{
		hl.Or("a=in[0], b=in[0], out=out[0]"),
		hl.Or("a=in[1], b=in[1], out=out[1]"),
		hl.Or("a=in[2], b=in[2], out=out[2]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.BufferN(3), b)
}

func TestDecoder(t *testing.T) {
	dec4, err := hw.Chip("myDecoder2x4", hw.In("sel[2]"), hw.Out("out[4]"), hw.Parts{
		hl.Not("in=sel[0], out=n0"),
		hl.Not("in=sel[1], out=n1"),
		hl.And("a=n0, b=n1, out=out[0]"),
		hl.And("a=sel[0], b=n1, out=out[1]"),
		hl.And("a=n0, b=sel[1], out=out[2]"),
		hl.And("a=sel[0], b=sel[1], out=out[3]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, hl.Decoder(2, 4), dec4)

	// out of range selector values set no output
	dec3, err := hw.Chip("myDecoder2x3", hw.In("sel[2]"), hw.Out("out[3]"), hw.Parts{
		hl.Not("in=sel[0], out=n0"),
		hl.Not("in=sel[1], out=n1"),
		hl.And("a=n0, b=n1, out=out[0]"),
		hl.And("a=sel[0], b=n1, out=out[1]"),
		hl.And("a=n0, b=sel[1], out=out[2]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 8, hl.Decoder(2, 3), dec3)
}

func TestAnnullerN(t *testing.T) {
	a, err := hw.Chip("myAnnuller3", hw.In("in[3], en"), hw.Out("out[3]"), hw.Parts{
		hl.And("a=in[0], b=en, out=out[0]"),
		hl.And("a=in[1], b=en, out=out[1]"),
		hl.And("a=in[2], b=en, out=out[2]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.AnnullerN(3), a)
}
