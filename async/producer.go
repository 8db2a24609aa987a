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

// Producer is the async write-side frontend. wait is the read index:
// the producer's futures register on it because it is the consumer's
// advanceRead that wakes them, and the consumer's Close that marks it
// closed.
type Producer[T any] struct {
	inner *ringbuf.Producer[T]
	wait  *Index
}

func (p *Producer[T]) Capacity() uint64  { return p.inner.Capacity() }
func (p *Producer[T]) VacantLen() uint64 { return p.inner.VacantLen() }
func (p *Producer[T]) IsFull() bool      { return p.inner.IsFull() }
func (p *Producer[T]) IsClosed() bool    { return p.wait.IsClosed() }
func (p *Producer[T]) Close()            { p.inner.Close() }

func (p *Producer[T]) registerWaker(w Waker) { p.wait.RegisterWaker(w) }

// Push returns a future that resolves Ok(nil) once item is accepted, or
// a *ringbuf.FullError[T] (wrapping item back) if the consumer closes
// first.
func (p *Producer[T]) Push(item T) *PushFuture[T] {
	return &PushFuture[T]{prod: p, item: &item}
}

// PushSliceAll returns a future that resolves once every element of buf
// has been written, or with the count already delivered if the consumer
// closes first.
func (p *Producer[T]) PushSliceAll(buf []T) *PushSliceFuture[T] {
	return &PushSliceFuture[T]{prod: p, remaining: buf}
}

// PushIterAll returns a future that drains next until it returns false
// (resolving true) or the consumer closes first (resolving false).
func (p *Producer[T]) PushIterAll(next func() (T, bool)) *PushIterFuture[T] {
	return &PushIterFuture[T]{prod: p, next: next}
}

// WaitVacant returns a future that resolves once VacantLen() >= count or
// the consumer closes. Panics if count exceeds capacity.
func (p *Producer[T]) WaitVacant(count uint64) *WaitVacantFuture[T] {
	if count > p.inner.Capacity() {
		panic("ringbuf/async: WaitVacant count exceeds capacity")
	}
	return &WaitVacantFuture[T]{prod: p, count: count}
}

// PushFuture is returned by Producer.Push.
type PushFuture[T any] struct {
	prod *Producer[T]
	item *T // nil once resolved: Terminated() becomes true
}

// Terminated reports whether this future has already yielded its single
// Ready result. Polling a terminated future is a contract violation.
func (f *PushFuture[T]) Terminated() bool { return f.item == nil }

// Poll follows a register, then load-closed, then attempt sequence. A
// closed consumer short-circuits the attempt entirely: once the consumer
// is gone no future push can be observed, so there is nothing to gain by
// trying.
func (f *PushFuture[T]) Poll(w Waker) (err error, done bool) {
	if f.Terminated() {
		panic("ringbuf/async: poll of terminated PushFuture")
	}
	f.prod.registerWaker(w)
	if f.prod.IsClosed() {
		item := *f.item
		f.item = nil
		return &ringbuf.FullError[T]{Item: item}, true
	}
	if e := f.prod.inner.TryPush(*f.item); e != nil {
		return nil, false
	}
	f.item = nil
	return nil, true
}

// Await drives Poll with a channel-backed waker until it resolves or ctx
// is done, for callers not themselves organized as a poll loop.
func (f *PushFuture[T]) Await(ctx context.Context) error {
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

// PushSliceFuture is returned by Producer.PushSliceAll.
type PushSliceFuture[T any] struct {
	prod      *Producer[T]
	remaining []T // nil once resolved
	count     int
}

func (f *PushSliceFuture[T]) Terminated() bool { return f.remaining == nil }

func (f *PushSliceFuture[T]) Poll(w Waker) (err error, done bool) {
	f.prod.registerWaker(w)
	if f.prod.IsClosed() {
		f.remaining = nil
		return ringbuf.ErrClosed, true
	}
	n := f.prod.inner.PushSlice(f.remaining)
	f.remaining = f.remaining[n:]
	f.count += n
	if len(f.remaining) == 0 {
		f.remaining = nil
		return nil, true
	}
	return nil, false
}

// Count reports how many items have been delivered so far, valid both
// mid-flight and after a close-terminated resolution.
func (f *PushSliceFuture[T]) Count() int { return f.count }

func (f *PushSliceFuture[T]) Await(ctx context.Context) error {
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

// PushIterFuture is returned by Producer.PushIterAll.
type PushIterFuture[T any] struct {
	prod *Producer[T]
	next func() (T, bool)
	done bool
	// buffered holds an item pulled from next but not yet pushed,
	// because a previous poll's vacancy ran out before it could land —
	// the Go equivalent of Peekable's one-item lookahead.
	buffered  T
	hasBuffer bool
}

func (f *PushIterFuture[T]) Terminated() bool { return f.done }

func (f *PushIterFuture[T]) Poll(w Waker) (ended bool, done bool) {
	f.prod.registerWaker(w)
	if f.prod.IsClosed() {
		f.done = true
		return false, true
	}
	for {
		if !f.hasBuffer {
			v, ok := f.next()
			if !ok {
				f.done = true
				return true, true
			}
			f.buffered, f.hasBuffer = v, true
		}
		if f.prod.inner.VacantLen() == 0 {
			return false, false
		}
		_ = f.prod.inner.TryPush(f.buffered)
		f.hasBuffer = false
	}
}

func (f *PushIterFuture[T]) Await(ctx context.Context) (bool, error) {
	for {
		notify := make(chan struct{}, 1)
		ended, done := f.Poll(func() { notifySend(notify) })
		if done {
			return ended, nil
		}
		select {
		case <-notify:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// WaitVacantFuture is returned by Producer.WaitVacant.
type WaitVacantFuture[T any] struct {
	prod  *Producer[T]
	count uint64
	done  bool
}

func (f *WaitVacantFuture[T]) Terminated() bool { return f.done }

func (f *WaitVacantFuture[T]) Poll(w Waker) (done bool) {
	if f.done {
		panic("ringbuf/async: poll of terminated WaitVacantFuture")
	}
	f.prod.registerWaker(w)
	closed := f.prod.IsClosed()
	if f.count <= f.prod.inner.VacantLen() || closed {
		f.done = true
		return true
	}
	return false
}

func (f *WaitVacantFuture[T]) Await(ctx context.Context) error {
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

func notifySend(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
