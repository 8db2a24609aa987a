// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package async

import (
	"context"

	"github.com/jskootsky/ringbuf"
)

// Consumer is the async read-side frontend. wait is the write index: the
// consumer's futures register on it because it is the producer's
// advanceWrite that wakes them, and the producer's Close that marks it
// closed.
type Consumer[T any] struct {
	inner *ringbuf.Consumer[T]
	wait  *Index
}

func (c *Consumer[T]) Capacity() uint64    { return c.inner.Capacity() }
func (c *Consumer[T]) OccupiedLen() uint64 { return c.inner.OccupiedLen() }
func (c *Consumer[T]) IsEmpty() bool       { return c.inner.IsEmpty() }
func (c *Consumer[T]) IsClosed() bool      { return c.wait.IsClosed() }
func (c *Consumer[T]) Close()              { c.inner.Close() }

func (c *Consumer[T]) registerWaker(w Waker) { c.wait.RegisterWaker(w) }

// Pop returns a future resolving to the next item, or ringbuf.ErrClosed
// once the buffer is both closed and drained.
func (c *Consumer[T]) Pop() *PopFuture[T] {
	return &PopFuture[T]{cons: c}
}

// PopSliceAll returns a future that resolves once out is completely
// filled, or with the count already delivered if the producer closes
// with the buffer drained first.
func (c *Consumer[T]) PopSliceAll(out []T) *PopSliceFuture[T] {
	return &PopSliceFuture[T]{cons: c, remaining: out}
}

// WaitOccupied returns a future that resolves once OccupiedLen() >=
// count or the producer closes. Panics if count exceeds capacity.
func (c *Consumer[T]) WaitOccupied(count uint64) *WaitOccupiedFuture[T] {
	if count > c.inner.Capacity() {
		panic("ringbuf/async: WaitOccupied count exceeds capacity")
	}
	return &WaitOccupiedFuture[T]{cons: c, count: count}
}

// PopFuture is returned by Consumer.Pop.
type PopFuture[T any] struct {
	cons *Consumer[T]
	done bool
}

func (f *PopFuture[T]) Terminated() bool { return f.done }

// Poll always attempts TryPop first, regardless of closed state: a
// closed-but-nonempty buffer still yields its remaining items, the
// asymmetric counterpart to PushFuture's closed short-circuit.
// ErrClosed is returned only once the attempt itself finds nothing.
func (f *PopFuture[T]) Poll(w Waker) (item T, err error, done bool) {
	if f.done {
		panic("ringbuf/async: poll of terminated PopFuture")
	}
	f.cons.registerWaker(w)
	closed := f.cons.IsClosed()
	if v, ok := f.cons.inner.TryPop(); ok {
		f.done = true
		return v, nil, true
	}
	if closed {
		f.done = true
		var zero T
		return zero, ringbuf.ErrClosed, true
	}
	var zero T
	return zero, nil, false
}

func (f *PopFuture[T]) Await(ctx context.Context) (T, error) {
	for {
		notify := make(chan struct{}, 1)
		item, err, done := f.Poll(func() { notifySend(notify) })
		if done {
			return item, err
		}
		select {
		case <-notify:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// PopSliceFuture is returned by Consumer.PopSliceAll.
type PopSliceFuture[T any] struct {
	cons      *Consumer[T]
	remaining []T // nil once resolved
	count     int
}

func (f *PopSliceFuture[T]) Terminated() bool { return f.remaining == nil }

func (f *PopSliceFuture[T]) Poll(w Waker) (err error, done bool) {
	f.cons.registerWaker(w)
	closed := f.cons.IsClosed()
	n := f.cons.inner.PopSlice(f.remaining)
	f.remaining = f.remaining[n:]
	f.count += n
	if len(f.remaining) == 0 {
		f.remaining = nil
		return nil, true
	}
	if closed {
		f.remaining = nil
		return ringbuf.ErrClosed, true
	}
	return nil, false
}

// Count reports how many items have been delivered so far.
func (f *PopSliceFuture[T]) Count() int { return f.count }

func (f *PopSliceFuture[T]) Await(ctx context.Context) error {
	for {
		notify := make(chan struct{}, 1)
		err, done := f.Poll(func() { notifySend(notify) })
		if done {
			return err
		}
		select {
		case <-notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WaitOccupiedFuture is returned by Consumer.WaitOccupied.
type WaitOccupiedFuture[T any] struct {
	cons  *Consumer[T]
	count uint64
	done  bool
}

func (f *WaitOccupiedFuture[T]) Terminated() bool { return f.done }

func (f *WaitOccupiedFuture[T]) Poll(w Waker) (done bool) {
	if f.done {
		panic("ringbuf/async: poll of terminated WaitOccupiedFuture")
	}
	f.cons.registerWaker(w)
	closed := f.cons.IsClosed()
	if f.count <= f.cons.inner.OccupiedLen() || closed {
		f.done = true
		return true
	}
	return false
}

func (f *WaitOccupiedFuture[T]) Await(ctx context.Context) error {
	for {
		notify := make(chan struct{}, 1)
		if f.Poll(func() { notifySend(notify) }) {
			return nil
		}
		select {
		case <-notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
