// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

import "sync/atomic"

// Index is a single monotonic position counter, modulus 2*capacity. The
// ring core never interprets the value itself beyond the modular algebra
// in this file; everything an adapter needs to ride on top of a position
// change (a semaphore give, a waker wake) hooks through Store.
//
// Load must synchronize-with a preceding Store made by the opposite side
// (the producer's write publishes cell initialization that the
// consumer's read must observe, and vice versa for vacancy). The plain
// implementation below uses atomic.Uint64, whose Load/Store are
// sequentially consistent on every architecture Go supports — strictly
// stronger than the acquire/release pairing this requires, never weaker.
type Index interface {
	Load() uint64
	Store(v uint64)
}

// plainIndex is the default Index: a bare atomic counter with no
// rendezvous side effects. ringbuf/blocking and ringbuf/async supply
// decorating implementations that additionally give a semaphore or wake
// a registered waker on Store.
type plainIndex struct {
	v atomic.Uint64
}

func (p *plainIndex) Load() uint64   { return p.v.Load() }
func (p *plainIndex) Store(v uint64) { p.v.Store(v) }

// NewIndex returns a plain atomic Index with no rendezvous side effects.
// ringbuf/blocking and ringbuf/async build on top of this rather than
// reimplementing the bare counter themselves.
func NewIndex() Index { return &plainIndex{} }

// modulus returns 2*capacity, the modulus positions are taken under.
func modulus(capacity uint64) uint64 {
	return 2 * capacity
}

// occupiedLen computes (modulus + write - read) mod modulus without
// relying on signed arithmetic.
func occupiedLen(read, write, capacity uint64) uint64 {
	m := modulus(capacity)
	return (m + write - read) % m
}

// vacantLen computes capacity - occupiedLen.
func vacantLen(read, write, capacity uint64) uint64 {
	return capacity - occupiedLen(read, write, capacity)
}

// splitRanges decomposes the occupied range [read, write) into at most
// two contiguous physical sub-ranges: one when the range doesn't wrap
// past the backing slice's end, two when it does. read and write are
// logical positions (pre-modulus-N, i.e. already in [0, 2*capacity));
// the returned ranges are physical offsets in [0, capacity).
func splitRanges(read, write, capacity uint64) (first, second [2]uint64) {
	readDiv, readMod := read/capacity, read%capacity
	writeDiv, writeMod := write/capacity, write%capacity
	if readDiv == writeDiv {
		return [2]uint64{readMod, writeMod}, [2]uint64{0, 0}
	}
	return [2]uint64{readMod, capacity}, [2]uint64{0, writeMod}
}

// splitVacantRanges decomposes the vacant range [write, read+capacity)
// into at most two contiguous physical sub-ranges, in the order a
// producer must fill them. It is the complement of splitRanges, not a
// call to it with a shifted argument: read and write are each taken
// directly from [0, 2*capacity), so their own div/mod values (not a
// div/mod of read+capacity, which can run past the 0/1 range the
// wrap-or-no-wrap branch below assumes) decide which branch applies.
func splitVacantRanges(read, write, capacity uint64) (first, second [2]uint64) {
	readDiv, readMod := read/capacity, read%capacity
	writeDiv, writeMod := write/capacity, write%capacity
	if readDiv == writeDiv {
		return [2]uint64{writeMod, capacity}, [2]uint64{0, readMod}
	}
	return [2]uint64{writeMod, readMod}, [2]uint64{0, 0}
}
