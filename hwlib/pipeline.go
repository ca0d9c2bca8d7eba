// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"math/big"
	"strconv"
	"strings"

	hw "github.com/db47h/hwblocks"
	"github.com/db47h/hwblocks/packed"
	"github.com/db47h/hwblocks/pipeline"
	"github.com/pkg/errors"
)

func pipelineName(cfg *pipeline.Config) string {
	return "PIPELINE" + strconv.Itoa(cfg.WordWidth) + "x" + strconv.Itoa(cfg.Depth)
}

// validatePipeline checks cfg and returns a copy that does not share its reset
// values with the caller.
func validatePipeline(cfg pipeline.Config) (pipeline.Config, error) {
	if _, err := pipeline.New(cfg); err != nil {
		return cfg, errors.Wrap(err, pipelineName(&cfg))
	}
	if cfg.ResetValues != nil {
		cfg.ResetValues = new(big.Int).Set(cfg.ResetValues)
	}
	return cfg, nil
}

func pipelineSpec(cfg *pipeline.Config) *hw.PartSpec {
	w, tw := cfg.WordWidth, cfg.TotalWidth()
	ins := hw.Inputs{pEn, pClr, pLoad}
	ins = append(ins, bus(w, pIn)...)
	ins = append(ins, bus(tw, pPin)...)
	return &hw.PartSpec{
		Name:    pipelineName(cfg),
		Inputs:  ins,
		Outputs: append(bus(w, pOut), bus(tw, pPout)...),
	}
}

// PipelineRegister returns a built-in pipeline register bank of cfg.Depth
// stages of cfg.WordWidth bits. See package pipeline for the details of its
// operation.
//
//	Inputs: en, clr, load, in[w], pin[w*depth]
//	Outputs: out[w], pout[w*depth]
//	Function: on each clock cycle, if en {
//	              if clr { stage[i] = reset[i] }
//	              else if load { stage[i] = pin[i] }
//	              else { stage[0] = in; stage[i] = stage[i-1] }
//	          }
//	          out = stage[depth-1]
//	          pout = stage[0..depth-1]
//
// Stage i of pin and pout occupies bits [i*w, (i+1)*w).
//
func PipelineRegister(cfg pipeline.Config) (hw.NewPartFn, error) {
	cfg, err := validatePipeline(cfg)
	if err != nil {
		return nil, err
	}
	w, tw := cfg.WordWidth, cfg.TotalWidth()
	sp := pipelineSpec(&cfg)
	sp.Mount = func(s *hw.Socket) []hw.Component {
		en, clr, load := s.Pin(pEn), s.Pin(pClr), s.Pin(pLoad)
		in, pin := s.Bus(pIn, w), s.Bus(pPin, tw)
		out, pout := s.Bus(pOut, w), s.Bus(pPout, tw)
		r, err := pipeline.New(cfg)
		if err != nil {
			panic(err)
		}
		po := r.ParallelOut()
		return []hw.Component{func(c *hw.Circuit) {
			if c.AtTick() {
				ld := c.Get(load)
				var pv *big.Int
				if ld {
					pv = Vector(c, pin)
				}
				r.Tick(pipeline.Inputs{
					Enable:     c.Get(en),
					Clear:      c.Get(clr),
					Load:       ld,
					ParallelIn: pv,
					PipeIn:     Uint64(c, in),
				})
				po = r.ParallelOut()
			}
			SetUint64(c, out, r.PipeOut())
			SetVector(c, pout, po)
		}}
	}
	return sp.NewPart, nil
}

// PipelineRegisterChip returns a pipeline register bank with the same
// interface and function as PipelineRegister, built from one MuxN and one
// Register per stage:
//
//	stage i: MuxN(a = i == 0 ? in : pout[i-1], b = pin[i], sel = load) -> Register(en, clr, reset[i]) -> pout[i]
//
// The serial output is buffered from pout[depth-1] and lags it by one
// simulation step.
//
func PipelineRegisterChip(cfg pipeline.Config) (hw.NewPartFn, error) {
	cfg, err := validatePipeline(cfg)
	if err != nil {
		return nil, err
	}
	w, d := cfg.WordWidth, cfg.Depth
	muxN := MuxN(w)
	parts := make(hw.Parts, 0, 2*d+1)
	for i := 0; i < d; i++ {
		prev := rng(pIn, 0, w)
		if i > 0 {
			prev = rng(pPout, (i-1)*w, w)
		}
		m := "m" + strconv.Itoa(i)
		parts = append(parts,
			muxN(connect(
				rng(pA, 0, w), prev,
				rng(pB, 0, w), rng(pPin, i*w, w),
				pSel, pLoad,
				rng(pOut, 0, w), rng(m, 0, w))),
			Register(w, packed.Field(cfg.ResetValues, i, w))(connect(
				rng(pIn, 0, w), rng(m, 0, w),
				pEn, pEn,
				pClr, pClr,
				rng(pOut, 0, w), rng(pPout, i*w, w))),
		)
	}
	parts = append(parts, BufferN(w)(connect(
		rng(pIn, 0, w), rng(pPout, (d-1)*w, w),
		rng(pOut, 0, w), rng(pOut, 0, w))))

	sp := pipelineSpec(&cfg)
	return hw.Chip(sp.Name, sp.Inputs, sp.Outputs, parts)
}

// connect builds a connection string from part pin / chip pin pairs.
func connect(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pairs[i])
		b.WriteByte('=')
		b.WriteString(pairs[i+1])
	}
	return b.String()
}
