// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pipeline implements a pipeline register bank: a chain of Depth
// stages of WordWidth bits each that can either shift words from stage to
// stage or load all stages in parallel.
//
// Stage 0 is the entry stage, fed by the serial input, and stage Depth-1 is
// the exit stage, driving the serial output. Packed vectors (reset values,
// parallel input and output) follow the conventions of package packed: stage
// i occupies bits [i*WordWidth, (i+1)*WordWidth).
//
package pipeline

import (
	"math"
	"math/big"

	"github.com/db47h/hwblocks/packed"
	"github.com/pkg/errors"
)

// Config is the construction time configuration of a Register.
//
type Config struct {
	// Width of a stage in bits, in the range [1, 64].
	WordWidth int
	// Number of stages. Must be at least 1.
	Depth int
	// Packed per-stage values loaded by a clear. Nil means all zero.
	ResetValues *big.Int
}

// TotalWidth returns the width of the packed parallel vectors.
//
func (cfg *Config) TotalWidth() int {
	return cfg.WordWidth * cfg.Depth
}

// Validate checks the configuration.
//
func (cfg *Config) Validate() error {
	if cfg.WordWidth < 1 || cfg.WordWidth > packed.MaxWidth {
		return errors.Errorf("invalid word width %d, must be in the range [1, %d]", cfg.WordWidth, packed.MaxWidth)
	}
	if cfg.Depth < 1 {
		return errors.Errorf("invalid depth %d, must be at least 1", cfg.Depth)
	}
	if cfg.Depth > math.MaxInt/cfg.WordWidth {
		return errors.Errorf("depth %d too large for word width %d", cfg.Depth, cfg.WordWidth)
	}
	if !packed.Fits(cfg.ResetValues, cfg.TotalWidth()) {
		return errors.Errorf("reset value %#x does not fit in %d bits", cfg.ResetValues, cfg.TotalWidth())
	}
	return nil
}

// Inputs are the control and data signals sampled by Register.Tick.
//
type Inputs struct {
	Enable     bool
	Clear      bool
	Load       bool
	ParallelIn *big.Int // nil reads as zero
	PipeIn     uint64
}

type stage struct {
	reset uint64
	value uint64
}

// Register is a pipeline register bank. A Register is not safe for
// concurrent use.
//
type Register struct {
	width  int
	mask   uint64
	stages []stage
	next   []uint64
}

// New returns a new Register with all stages set to zero.
//
func New(cfg Config) (*Register, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "pipeline")
	}
	r := &Register{
		width:  cfg.WordWidth,
		mask:   packed.Mask(cfg.WordWidth),
		stages: make([]stage, cfg.Depth),
		next:   make([]uint64, cfg.Depth),
	}
	for i := range r.stages {
		r.stages[i].reset = packed.Field(cfg.ResetValues, i, cfg.WordWidth)
	}
	return r, nil
}

// WordWidth returns the stage width.
//
func (r *Register) WordWidth() int { return r.width }

// Depth returns the number of stages.
//
func (r *Register) Depth() int { return len(r.stages) }

// Tick advances the register by one clock cycle.
//
// Nothing happens unless in.Enable is set. Then, by decreasing priority:
// Clear loads every stage with its reset value, Load loads stage i with
// field i of ParallelIn, and otherwise words shift by one stage: stage 0
// takes PipeIn and stage i takes the value that stage i-1 held before the
// tick.
//
func (r *Register) Tick(in Inputs) {
	if !in.Enable {
		return
	}
	// compute all next values from the current state, then commit.
	switch {
	case in.Clear:
		for i := range r.stages {
			r.next[i] = r.stages[i].reset
		}
	case in.Load:
		for i := range r.stages {
			r.next[i] = packed.Field(in.ParallelIn, i, r.width)
		}
	default:
		r.next[0] = in.PipeIn & r.mask
		for i := 1; i < len(r.stages); i++ {
			r.next[i] = r.stages[i-1].value
		}
	}
	for i, v := range r.next {
		r.stages[i].value = v
	}
}

// Reset sets all stages to their reset value. This is the same as a Tick with
// Enable and Clear set.
//
func (r *Register) Reset() {
	r.Tick(Inputs{Enable: true, Clear: true})
}

// Stage returns the current value of stage i.
//
func (r *Register) Stage(i int) uint64 {
	return r.stages[i].value
}

// PipeOut returns the value of the exit stage.
//
func (r *Register) PipeOut() uint64 {
	return r.stages[len(r.stages)-1].value
}

// ParallelOut returns the packed stage values.
//
func (r *Register) ParallelOut() *big.Int {
	v := new(big.Int)
	for i := range r.stages {
		packed.SetField(v, i, r.width, r.stages[i].value)
	}
	return v
}
