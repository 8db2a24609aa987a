// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

import "iter"

// closableIndex is the optional capability an Index may implement on top
// of Load/Store: a monotonic "closed" bit plus the hook that sets it.
// ringbuf/blocking and ringbuf/async's index adapters implement it;
// plainIndex does not, so a purely synchronous ring pays nothing for a
// capability it never uses.
type closableIndex interface {
	Index
	Close()
	IsClosed() bool
}

func closeIndex(idx Index) {
	if c, ok := idx.(closableIndex); ok {
		c.Close()
	}
}

// release decrements the ring's outstanding-handle count; when it
// reaches zero (both halves, or the single unified handle, have closed)
// any remaining occupied cells are dropped, since nothing can observe
// them again.
func (r *ring[T]) release() {
	if r.refs.Add(-1) == 0 {
		r.clear()
	}
}

// tryPush is the shared implementation behind Producer.TryPush and
// RingBuffer.TryPush.
func tryPush[T any](r *ring[T], item T) error {
	if r.VacantLen() == 0 {
		return &FullError[T]{Item: item}
	}
	first, second := r.vacantSlices()
	if len(first) > 0 {
		first[0] = item
	} else {
		second[0] = item
	}
	r.advanceWrite(1)
	return nil
}

// pushSlice is the shared implementation behind Producer.PushSlice and
// RingBuffer.PushSlice.
func pushSlice[T any](r *ring[T], buf []T) int {
	first, second := r.vacantSlices()
	n := copy(first, buf)
	n += copy(second, buf[n:])
	r.advanceWrite(uint64(n))
	return n
}

// pushIter is the shared implementation behind Producer.PushIter and
// RingBuffer.PushIter. Vacancy is checked before each pull from next so
// an item is never drawn from the source and then discarded for lack of
// room.
func pushIter[T any](r *ring[T], next func() (T, bool)) int {
	n := 0
	for r.VacantLen() > 0 {
		v, ok := next()
		if !ok {
			break
		}
		_ = tryPush(r, v)
		n++
	}
	return n
}

// tryPop is the shared implementation behind Consumer.TryPop and
// RingBuffer.TryPop.
func tryPop[T any](r *ring[T]) (T, bool) {
	var zero T
	if r.OccupiedLen() == 0 {
		return zero, false
	}
	first, second := r.occupiedSlices()
	var item T
	if len(first) > 0 {
		item = first[0]
	} else {
		item = second[0]
	}
	r.advanceRead(1)
	return item, true
}

// popSlice is the shared implementation behind Consumer.PopSlice and
// RingBuffer.PopSlice.
func popSlice[T any](r *ring[T], out []T) int {
	first, second := r.occupiedSlices()
	n := copy(out, first)
	n += copy(out[n:], second)
	r.advanceRead(uint64(n))
	return n
}

// popIter is the shared implementation behind Consumer.PopIter and
// RingBuffer.PopIter.
func popIter[T any](r *ring[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := tryPop(r)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Observer is the non-mutating capability set: length/capacity/range
// queries. It may be held and read from any number of goroutines.
type Observer[T any] struct {
	r *ring[T]
}

func (o Observer[T]) Capacity() uint64    { return o.r.Capacity() }
func (o Observer[T]) OccupiedLen() uint64 { return o.r.OccupiedLen() }
func (o Observer[T]) VacantLen() uint64   { return o.r.VacantLen() }
func (o Observer[T]) IsEmpty() bool       { return o.r.IsEmpty() }
func (o Observer[T]) IsFull() bool        { return o.r.IsFull() }

// Producer is the write-side half: exclusive authority over the write
// position. At most one Producer handle may exist for a given ring at a
// time; the only way to obtain one is New or Split.
type Producer[T any] struct {
	Observer[T]
	r      *ring[T]
	closed bool
}

// TryPush writes item into the first vacant cell and advances write by
// one. Returns *FullError[T] (wrapping item) if the ring has no vacant
// cell; the item is never silently dropped.
func (p *Producer[T]) TryPush(item T) error { return tryPush(p.r, item) }

// PushSlice bulk-copies buf into the ring, returning the number of items
// written (<= len(buf), <= VacantLen()).
func (p *Producer[T]) PushSlice(buf []T) int { return pushSlice(p.r, buf) }

// PushIter drains next until it returns false or the ring's vacancy is
// exhausted, returning the count pushed.
func (p *Producer[T]) PushIter(next func() (T, bool)) int { return pushIter(p.r, next) }

// VacantSlicesMut returns direct, mutable views of the vacant cells, in
// the order they must be filled.
//
// Contract: the caller must initialize exactly the first count cells
// across the two slices, in order, then call AdvanceWrite(count) before
// any other mutating call on this Producer. Violating this contract is a
// programmer error, not a runtime condition.
func (p *Producer[T]) VacantSlicesMut() (first, second []T) { return p.r.vacantSlices() }

// AdvanceWrite publishes count newly-initialized cells to the consumer.
// See VacantSlicesMut.
func (p *Producer[T]) AdvanceWrite(count uint64) { p.r.advanceWrite(count) }

// Close releases this Producer's claim on the ring, signaling closed on
// the index the consumer polls and dropping the last reference's worth
// of occupied cells. Go has no destructors, so Close must be called
// explicitly — typically via defer — by whichever goroutine owns the
// Producer.
func (p *Producer[T]) Close() {
	if p.closed {
		return
	}
	p.closed = true
	closeIndex(p.r.write)
	p.r.release()
}

// Consumer is the read-side half: exclusive authority over the read
// position. At most one Consumer handle may exist for a given ring at a
// time.
type Consumer[T any] struct {
	Observer[T]
	r      *ring[T]
	closed bool
}

// TryPop reads and removes the oldest item, or reports false if the
// ring is empty.
func (c *Consumer[T]) TryPop() (T, bool) { return tryPop(c.r) }

// PopSlice bulk-copies up to len(out) occupied items into out, returning
// the number of items popped.
func (c *Consumer[T]) PopSlice(out []T) int { return popSlice(c.r, out) }

// PopIter returns a lazy sequence that pops items one at a time as the
// caller ranges over it, stopping when the ring is empty. This is the
// idiomatic Go shape for a consuming iterator (stdlib iter.Seq), used in
// place of Rust's consuming Iterator impl.
func (c *Consumer[T]) PopIter() iter.Seq[T] { return popIter(c.r) }

// OccupiedSlices returns direct views of the occupied cells, in order.
//
// Contract: the caller must remove items starting from the front of the
// first slice, then the front of the second, then call
// AdvanceRead(count) naming exactly the number removed, before any other
// mutating call on this Consumer.
func (c *Consumer[T]) OccupiedSlices() (first, second []T) { return c.r.occupiedSlices() }

// AdvanceRead publishes count newly-vacated cells to the producer. See
// OccupiedSlices.
func (c *Consumer[T]) AdvanceRead(count uint64) { c.r.advanceRead(count) }

// Clear drops every currently occupied cell and advances read past them,
// returning the number of items removed.
func (c *Consumer[T]) Clear() uint64 { return c.r.clear() }

// Close releases this Consumer's claim on the ring, signaling closed on
// the index the producer polls.
func (c *Consumer[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	closeIndex(c.r.read)
	c.r.release()
}

// RingBuffer is the single-owner case: one handle with both Producer and
// Consumer authority, for single-threaded state machines and for
// Transfer's same-ring case.
type RingBuffer[T any] struct {
	Observer[T]
	r      *ring[T]
	closed bool
}

// New creates a ring of the given capacity held by a single unified
// handle exposing both producer and consumer authority.
func New[T any](capacity int) *RingBuffer[T] {
	r := newRing[T](capacity)
	r.refs.Store(1)
	return &RingBuffer[T]{Observer: Observer[T]{r: r}, r: r}
}

// NewWithIndices constructs a ring using caller-supplied Index
// implementations for the read and write positions, instead of the bare
// atomic counters New uses. This is how ringbuf/blocking and
// ringbuf/async attach a semaphore or waker slot to one side without the
// core depending on either: both packages build an Index decorator
// satisfying this package's Index interface and wire it in here. Most
// callers should use New.
func NewWithIndices[T any](capacity int, read, write Index) *RingBuffer[T] {
	r := newRing[T](capacity)
	r.read = read
	r.write = write
	r.refs.Store(1)
	return &RingBuffer[T]{Observer: Observer[T]{r: r}, r: r}
}

func (rb *RingBuffer[T]) TryPush(item T) error               { return tryPush(rb.r, item) }
func (rb *RingBuffer[T]) TryPop() (T, bool)                  { return tryPop(rb.r) }
func (rb *RingBuffer[T]) PushSlice(buf []T) int              { return pushSlice(rb.r, buf) }
func (rb *RingBuffer[T]) PopSlice(out []T) int               { return popSlice(rb.r, out) }
func (rb *RingBuffer[T]) PushIter(next func() (T, bool)) int { return pushIter(rb.r, next) }
func (rb *RingBuffer[T]) PopIter() iter.Seq[T]               { return popIter(rb.r) }
func (rb *RingBuffer[T]) Clear() uint64                      { return rb.r.clear() }

// Split divides the ring into independent Producer and Consumer halves
// that jointly own the core. This is the only way (besides New's unified
// handle) to obtain a Producer or Consumer, so at most one of each can
// exist for a given ring.
func (rb *RingBuffer[T]) Split() (*Producer[T], *Consumer[T]) {
	rb.r.refs.Store(2)
	return &Producer[T]{Observer: Observer[T]{r: rb.r}, r: rb.r},
		&Consumer[T]{Observer: Observer[T]{r: rb.r}, r: rb.r}
}

// Close releases the unified handle, dropping any remaining occupied
// cells.
func (rb *RingBuffer[T]) Close() {
	if rb.closed {
		return
	}
	rb.closed = true
	closeIndex(rb.r.read)
	closeIndex(rb.r.write)
	rb.r.release()
}
