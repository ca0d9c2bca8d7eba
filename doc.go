// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwblocks provides a naive synchronous hardware simulator together with
an API to compose parts (logic gates, registers, muxers, etc.) into chips and
run them in a Circuit.

Pin states are double buffered: during a simulation step, every component reads
the states committed by the previous step and writes the states for the next
one. A component therefore never observes a value written during the same
step, which gives clocked parts the simultaneous update semantics of real
flip-flops.

The parameterized blocks built on top of this package live in hwlib
(PipelineRegister, BinaryDemux and the parts they are made of). Their
circuit-free models live in the pipeline and demux packages.
*/
package hwblocks
