// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command blocksim simulates a pipeline register whose serial output feeds a
// binary demultiplexer. The demux selector is driven by a counter cycling
// through the output lanes.
//
// The pipeline is fed with an incrementing counter. Each clock cycle, blocksim
// logs the pipeline input, its serial output, the demux valid bits and lanes.
//
package main

import (
	"flag"
	"log"
	"strconv"

	hw "github.com/db47h/hwblocks"
	"github.com/db47h/hwblocks/demux"
	hl "github.com/db47h/hwblocks/hwlib"
	"github.com/db47h/hwblocks/packed"
	"github.com/db47h/hwblocks/pipeline"
)

func rng(name string, start, bits int) string {
	return name + "[" + strconv.Itoa(start) + ".." + strconv.Itoa(start+bits-1) + "]"
}

func conn(pp, cp string, start, bits int) string {
	return rng(pp, 0, bits) + "=" + rng(cp, start, bits)
}

func main() {
	var (
		width     = flag.Int("width", 8, "word width in bits")
		depth     = flag.Int("depth", 4, "pipeline depth")
		lanes     = flag.Int("lanes", 4, "number of demux output lanes")
		addr      = flag.Int("addr", 2, "demux selector width in bits")
		broadcast = flag.Bool("broadcast", false, "broadcast the pipeline output to all lanes")
		cycles    = flag.Int("cycles", 16, "number of clock cycles to simulate")
		workers   = flag.Int("workers", 0, "number of worker goroutines (0 = GOMAXPROCS)")
		tpc       = flag.Uint("tpc", 16, "simulation steps per clock cycle")
		chips     = flag.Bool("chip", false, "use structural chips instead of built-in parts")
	)
	flag.Parse()

	mode := demux.Select
	if *broadcast {
		mode = demux.Broadcast
	}
	pcfg := pipeline.Config{WordWidth: *width, Depth: *depth}
	dcfg := demux.Config{WordWidth: *width, AddrWidth: *addr, Outputs: *lanes, Mode: mode}

	newPipeline, newDemux := hl.PipelineRegister, hl.BinaryDemux
	if *chips {
		newPipeline, newDemux = hl.PipelineRegisterChip, hl.BinaryDemuxChip
	}
	pr, err := newPipeline(pcfg)
	if err != nil {
		log.Fatal(err)
	}
	dm, err := newDemux(dcfg)
	if err != nil {
		log.Fatal(err)
	}

	w, n := *width, *lanes
	var (
		in, sel        uint64
		pipeOut, valid uint64
		outs           = make([]uint64, n)
	)

	dconn := conn("in", "word", 0, w) + ", " + conn("valid", "valid", 0, n) + ", " + conn("out", "lanes", 0, w*n)
	parts := hw.Parts{
		hl.InputN(w, func() uint64 { return in })(conn("out", "pipeIn", 0, w)),
		pr("en=true, clr=false, load=false, " + conn("in", "pipeIn", 0, w) + ", " + conn("out", "word", 0, w)),
		hl.OutputN(w, func(v uint64) { pipeOut = v })(conn("in", "word", 0, w)),
		hl.OutputN(n, func(v uint64) { valid = v })(conn("in", "valid", 0, n)),
	}
	if *addr > 0 {
		parts = append(parts, hl.InputN(*addr, func() uint64 { return sel })(conn("out", "sel", 0, *addr)))
		dconn = conn("sel", "sel", 0, *addr) + ", " + dconn
	}
	parts = append(parts, dm(dconn))
	for i := range outs {
		o := &outs[i]
		parts = append(parts, hl.OutputN(w, func(v uint64) { *o = v })(conn("in", "lanes", i*w, w)))
	}

	c, err := hw.NewCircuit(*workers, *tpc, parts)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Dispose()

	log.Printf("%d components, %d steps per cycle", c.Size(), c.SPC())
	mask := packed.Mask(w)
	for cycle := 0; cycle < *cycles; cycle++ {
		in = uint64(cycle+1) & mask
		sel = uint64(cycle % n)
		c.TickTock()
		log.Printf("cycle %3d: pipeIn=%#x sel=%d pipeOut=%#x valid=%0*b lanes=%#x", cycle, in, sel, pipeOut, n, valid, outs)
	}
}
