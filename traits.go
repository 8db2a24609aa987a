// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

// ObserverIface is the read-only capability set: length/capacity/range
// queries. Observer, Producer, Consumer, RingBuffer, CachedProducer and
// CachedConsumer all satisfy it structurally. The blocking and async
// Producer/Consumer wrappers expose only their own side's lengths and do
// not satisfy it.
type ObserverIface interface {
	Capacity() uint64
	OccupiedLen() uint64
	VacantLen() uint64
	IsEmpty() bool
	IsFull() bool
}

// ProducerIface is ObserverIface plus write-side mutation. Producer,
// RingBuffer and CachedProducer all satisfy it.
type ProducerIface[T any] interface {
	ObserverIface
	TryPush(item T) error
	PushSlice(buf []T) int
}

// ConsumerIface is ObserverIface plus read-side mutation. Consumer,
// RingBuffer and CachedConsumer all satisfy it.
type ConsumerIface[T any] interface {
	ObserverIface
	TryPop() (T, bool)
	PopSlice(out []T) int
}

// RingBufferIface is the single-owner capability set: both Producer and
// Consumer authority on one handle. *RingBuffer[T] satisfies it.
type RingBufferIface[T any] interface {
	ProducerIface[T]
	ConsumerIface[T]
}

var (
	_ ObserverIface        = Observer[int]{}
	_ ProducerIface[int]   = (*Producer[int])(nil)
	_ ConsumerIface[int]   = (*Consumer[int])(nil)
	_ RingBufferIface[int] = (*RingBuffer[int])(nil)
	_ ProducerIface[int]   = (*CachedProducer[int])(nil)
	_ ConsumerIface[int]   = (*CachedConsumer[int])(nil)
)
