// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blocking

import (
	"fmt"
	"time"

	"github.com/jskootsky/ringbuf"
)

// New builds a ring of the given capacity and splits it into a blocking
// Producer/Consumer pair, each backed by an Index carrying its own
// semaphore.
func New[T any](capacity int) (*Producer[T], *Consumer[T]) {
	readIdx := NewIndex(NewStdSemaphore())
	writeIdx := NewIndex(NewStdSemaphore())
	rb := ringbuf.NewWithIndices[T](capacity, readIdx, writeIdx)
	p, c := rb.Split()
	return &Producer[T]{inner: p, wait: readIdx}, &Consumer[T]{inner: c, wait: writeIdx}
}

// Producer is the blocking write-side frontend. wait is the read index:
// the producer blocks on it because it is the consumer's advanceRead
// that gives it progress, and the consumer's Close that marks it closed.
type Producer[T any] struct {
	inner *ringbuf.Producer[T]
	wait  *Index
}

func (p *Producer[T]) Capacity() uint64    { return p.inner.Capacity() }
func (p *Producer[T]) VacantLen() uint64   { return p.inner.VacantLen() }
func (p *Producer[T]) IsFull() bool        { return p.inner.IsFull() }
func (p *Producer[T]) IsClosed() bool      { return p.wait.IsClosed() }
func (p *Producer[T]) Close()              { p.inner.Close() }

// Push blocks until item is written, the consumer closes, or timeout
// elapses. hasTimeout=false means wait forever. On ErrClosed the item is
// returned via the *ringbuf.FullError wrapped in the error; on
// ErrTimeout the item is simply lost to the caller's control flow (it
// was never accepted) — call Push again with the same item if desired.
func (p *Producer[T]) Push(item T, timeout time.Duration, hasTimeout bool) error {
	it := NewTimeoutIterator(timeout, hasTimeout)
	for {
		if err := p.inner.TryPush(item); err == nil {
			return nil
		}
		if p.wait.IsClosed() {
			return fmt.Errorf("%w: %w", ringbuf.ErrClosed, &ringbuf.FullError[T]{Item: item})
		}
		remaining, waitHasTimeout, ok := it.Next()
		if !ok {
			return ringbuf.ErrTimeout
		}
		p.wait.Wait(remaining, waitHasTimeout)
	}
}

// PushSlice blocks, retrying as room frees up, until every item in buf
// has been written, the consumer closes, or timeout elapses. Returns the
// number of items actually written, which is len(buf) only on a nil
// error.
func (p *Producer[T]) PushSlice(buf []T, timeout time.Duration, hasTimeout bool) (int, error) {
	it := NewTimeoutIterator(timeout, hasTimeout)
	total := 0
	for total < len(buf) {
		total += p.inner.PushSlice(buf[total:])
		if total == len(buf) {
			return total, nil
		}
		if p.wait.IsClosed() {
			return total, ringbuf.ErrClosed
		}
		remaining, waitHasTimeout, ok := it.Next()
		if !ok {
			return total, ringbuf.ErrTimeout
		}
		p.wait.Wait(remaining, waitHasTimeout)
	}
	return total, nil
}

// Consumer is the blocking read-side frontend. wait is the write index:
// the consumer blocks on it because it is the producer's advanceWrite
// that gives it progress, and the producer's Close that marks it closed.
type Consumer[T any] struct {
	inner *ringbuf.Consumer[T]
	wait  *Index
}

func (c *Consumer[T]) Capacity() uint64    { return c.inner.Capacity() }
func (c *Consumer[T]) OccupiedLen() uint64 { return c.inner.OccupiedLen() }
func (c *Consumer[T]) IsEmpty() bool       { return c.inner.IsEmpty() }
func (c *Consumer[T]) IsClosed() bool      { return c.wait.IsClosed() }
func (c *Consumer[T]) Close()              { c.inner.Close() }

// Pop blocks until an item is available, the producer closes with the
// buffer empty, or timeout elapses. A closed-but-nonempty buffer is
// drained normally — ErrClosed is only returned once TryPop itself finds
// nothing left; a pop from a closed buffer that still holds data is not
// an error.
func (c *Consumer[T]) Pop(timeout time.Duration, hasTimeout bool) (T, error) {
	it := NewTimeoutIterator(timeout, hasTimeout)
	for {
		closed := c.wait.IsClosed()
		if v, ok := c.inner.TryPop(); ok {
			return v, nil
		}
		if closed {
			var zero T
			return zero, ringbuf.ErrClosed
		}
		remaining, waitHasTimeout, ok := it.Next()
		if !ok {
			var zero T
			return zero, ringbuf.ErrTimeout
		}
		c.wait.Wait(remaining, waitHasTimeout)
	}
}

// PopSlice blocks, retrying as data arrives, until out is completely
// filled, the producer closes with the buffer drained, or timeout
// elapses. Returns the number of items actually popped.
func (c *Consumer[T]) PopSlice(out []T, timeout time.Duration, hasTimeout bool) (int, error) {
	it := NewTimeoutIterator(timeout, hasTimeout)
	total := 0
	for total < len(out) {
		closed := c.wait.IsClosed()
		total += c.inner.PopSlice(out[total:])
		if total == len(out) {
			return total, nil
		}
		if closed {
			return total, ringbuf.ErrClosed
		}
		remaining, waitHasTimeout, ok := it.Next()
		if !ok {
			return total, ringbuf.ErrTimeout
		}
		c.wait.Wait(remaining, waitHasTimeout)
	}
	return total, nil
}
