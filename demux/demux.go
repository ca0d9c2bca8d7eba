// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package demux implements a binary demultiplexer that routes an input word to
// one of Outputs lanes, or broadcasts it to all of them.
//
// Lanes are packed into a single vector following the conventions of package
// packed: lane i occupies bits [i*WordWidth, (i+1)*WordWidth).
//
package demux

import (
	"math"
	"math/big"
	"strconv"

	"github.com/db47h/hwblocks/packed"
	"github.com/pkg/errors"
)

// Mode selects the routing mode of a Demux.
//
type Mode int

// Routing modes.
//
const (
	// Select routes the input word to the selected lane and zeroes the
	// others.
	Select Mode = iota
	// Broadcast copies the input word to every lane, regardless of the
	// selector.
	Broadcast
)

func (m Mode) String() string {
	switch m {
	case Select:
		return "select"
	case Broadcast:
		return "broadcast"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Config is the construction time configuration of a Demux.
//
type Config struct {
	// Width of the input word and of each lane, in the range [1, 64].
	WordWidth int
	// Width of the selector, in the range [0, 64]. 1<<AddrWidth must be
	// at least Outputs.
	AddrWidth int
	// Number of output lanes. Must be at least 1.
	Outputs int
	Mode    Mode
}

// Validate checks the configuration.
//
func (cfg *Config) Validate() error {
	if cfg.WordWidth < 1 || cfg.WordWidth > packed.MaxWidth {
		return errors.Errorf("invalid word width %d, must be in the range [1, %d]", cfg.WordWidth, packed.MaxWidth)
	}
	if cfg.Outputs < 1 {
		return errors.Errorf("invalid output count %d, must be at least 1", cfg.Outputs)
	}
	if cfg.AddrWidth < 0 || cfg.AddrWidth > packed.MaxWidth {
		return errors.Errorf("invalid address width %d, must be in the range [0, %d]", cfg.AddrWidth, packed.MaxWidth)
	}
	if cfg.AddrWidth < 63 && uint64(cfg.Outputs) > 1<<uint(cfg.AddrWidth) {
		return errors.Errorf("address width %d too small to select one of %d outputs", cfg.AddrWidth, cfg.Outputs)
	}
	if cfg.Outputs > math.MaxInt/cfg.WordWidth {
		return errors.Errorf("output count %d too large for word width %d", cfg.Outputs, cfg.WordWidth)
	}
	if cfg.Mode != Select && cfg.Mode != Broadcast {
		return errors.Errorf("invalid mode %v", cfg.Mode)
	}
	return nil
}

// Demux is a binary demultiplexer. It has no state and is safe for concurrent
// use.
//
type Demux struct {
	width   int
	mask    uint64
	outputs int
	mode    Mode
}

// New returns a new Demux.
//
func New(cfg Config) (*Demux, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "demux")
	}
	return &Demux{
		width:   cfg.WordWidth,
		mask:    packed.Mask(cfg.WordWidth),
		outputs: cfg.Outputs,
		mode:    cfg.Mode,
	}, nil
}

// WordWidth returns the width of a lane.
//
func (d *Demux) WordWidth() int { return d.width }

// Outputs returns the number of lanes.
//
func (d *Demux) Outputs() int { return d.outputs }

// Mode returns the routing mode.
//
func (d *Demux) Mode() Mode { return d.mode }

// Decode returns the one-hot decoding of sel as an Outputs bits wide vector.
// If sel is out of range, no bit is set.
//
func (d *Demux) Decode(sel uint64) *big.Int {
	v := new(big.Int)
	if sel < uint64(d.outputs) {
		v.SetBit(v, int(sel), 1)
	}
	return v
}

// Route returns the valid bits for sel and the packed output lanes.
//
// In Select mode, the lane selected by sel gets word and all other lanes are
// zero; an out of range selector yields all zero lanes. In Broadcast mode,
// every lane gets word. Bits of word above WordWidth are ignored.
//
func (d *Demux) Route(sel, word uint64) (valid, out *big.Int) {
	valid = d.Decode(sel)
	word &= d.mask
	out = new(big.Int)
	switch d.mode {
	case Broadcast:
		for i := 0; i < d.outputs; i++ {
			packed.SetField(out, i, d.width, word)
		}
	case Select:
		if valid.Sign() != 0 {
			packed.SetField(out, int(sel), d.width, word)
		}
	}
	return valid, out
}

// Lane returns lane i of a packed output vector.
//
func (d *Demux) Lane(out *big.Int, i int) uint64 {
	return packed.Field(out, i, d.width)
}
