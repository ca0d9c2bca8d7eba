// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package packed provides helpers for packed multi-word bit vectors.
//
// Element i of a vector made of width-bit elements occupies bits
// [i*width, (i+1)*width), element 0 being at the least significant position.
// The vectors themselves are *big.Int values so that they can be wider than 64
// bits; elements are uint64 values, so width must be in the range [1, 64].
//
package packed

import (
	"math/big"
)

// MaxWidth is the maximum element width.
//
const MaxWidth = 64

// Mask returns a mask with the width least significant bits set.
//
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Field returns element i of v. A nil v reads as zero.
//
func Field(v *big.Int, i, width int) uint64 {
	if v == nil {
		return 0
	}
	var x uint64
	base := i * width
	for b := 0; b < width; b++ {
		if v.Bit(base+b) != 0 {
			x |= 1 << uint(b)
		}
	}
	return x
}

// SetField sets element i of v to x. Bits of x above width are ignored.
// It returns v.
//
func SetField(v *big.Int, i, width int, x uint64) *big.Int {
	base := i * width
	for b := 0; b < width; b++ {
		v.SetBit(v, base+b, uint(x>>uint(b))&1)
	}
	return v
}

// Pack packs elements into a new vector, elems[0] at the least significant
// position.
//
func Pack(width int, elems ...uint64) *big.Int {
	v := new(big.Int)
	for i, x := range elems {
		SetField(v, i, width, x)
	}
	return v
}

// Unpack returns the first count elements of v.
//
func Unpack(v *big.Int, width, count int) []uint64 {
	out := make([]uint64, count)
	for i := range out {
		out[i] = Field(v, i, width)
	}
	return out
}

// Fits returns true if v is non-negative and has no bits set at or above
// position width.
//
func Fits(v *big.Int, width int) bool {
	return v == nil || v.Sign() >= 0 && v.BitLen() <= width
}
