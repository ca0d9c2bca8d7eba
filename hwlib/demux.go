// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	hw "github.com/db47h/hwblocks"
	"github.com/db47h/hwblocks/demux"
	"github.com/pkg/errors"
)

func demuxSpec(cfg *demux.Config) *hw.PartSpec {
	name := "DEMUX" + strconv.Itoa(cfg.WordWidth) + "x" + strconv.Itoa(cfg.Outputs)
	if cfg.Mode == demux.Broadcast {
		name += "B"
	}
	return &hw.PartSpec{
		Name:    name,
		Inputs:  append(bus(cfg.AddrWidth, pSel), bus(cfg.WordWidth, pIn)...),
		Outputs: append(bus(cfg.Outputs, pValid), bus(cfg.WordWidth*cfg.Outputs, pOut)...),
	}
}

// BinaryDemux returns a built-in binary demultiplexer routing a w bits word to
// one of n lanes. See package demux for the details of its operation.
//
//	Inputs: sel[a], in[w]
//	Outputs: valid[n], out[w*n]
//	Function: for i := range valid { valid[i] = sel == i }
//	          if broadcast { out[i] = in } else if valid[i] { out[i] = in } else { out[i] = 0 }
//
// Lane i of out occupies bits [i*w, (i+1)*w).
//
func BinaryDemux(cfg demux.Config) (hw.NewPartFn, error) {
	sp := demuxSpec(&cfg)
	d, err := demux.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, sp.Name)
	}
	sp.Mount = func(s *hw.Socket) []hw.Component {
		sel, in := s.Bus(pSel, cfg.AddrWidth), s.Bus(pIn, cfg.WordWidth)
		valid, out := s.Bus(pValid, cfg.Outputs), s.Bus(pOut, cfg.WordWidth*cfg.Outputs)
		return []hw.Component{func(c *hw.Circuit) {
			v, o := d.Route(Uint64(c, sel), Uint64(c, in))
			SetVector(c, valid, v)
			SetVector(c, out, o)
		}}
	}
	return sp.NewPart, nil
}

// BinaryDemuxChip returns a binary demultiplexer with the same interface and
// function as BinaryDemux, built from a Decoder driving the valid outputs and
// one AnnullerN per lane. In select mode, each annuller is enabled by its
// lane's valid bit. In broadcast mode, all annullers are enabled.
//
func BinaryDemuxChip(cfg demux.Config) (hw.NewPartFn, error) {
	sp := demuxSpec(&cfg)
	if _, err := demux.New(cfg); err != nil {
		return nil, errors.Wrap(err, sp.Name)
	}
	w, n := cfg.WordWidth, cfg.Outputs
	parts := make(hw.Parts, 0, n+1)

	decConn := connect(rng(pOut, 0, n), rng(pValid, 0, n))
	if cfg.AddrWidth > 0 {
		decConn = connect(rng(pSel, 0, cfg.AddrWidth), rng(pSel, 0, cfg.AddrWidth)) + ", " + decConn
	}
	parts = append(parts, Decoder(cfg.AddrWidth, n)(decConn))

	annul := AnnullerN(w)
	for i := 0; i < n; i++ {
		en := hw.True
		if cfg.Mode == demux.Select {
			en = hw.BusPinName(pValid, i)
		}
		parts = append(parts, annul(connect(
			rng(pIn, 0, w), rng(pIn, 0, w),
			pEn, en,
			rng(pOut, 0, w), rng(pOut, i*w, w))))
	}
	return hw.Chip(sp.Name, sp.Inputs, sp.Outputs, parts)
}
