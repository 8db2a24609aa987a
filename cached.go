// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

import "iter"

// CachedProducer wraps a Producer with a local cache of the consumer's
// read position. TryPush, IsFull and VacantLen consult the cache first
// and reload read only when the cache reports "full": if the reloaded
// value advanced, the operation retries against fresh data; if not, the
// ring really is full.
//
// A push that goes ahead is carried out by the same tryPush/pushSlice
// that Producer uses, and those load read themselves, so the cache does
// not remove the cross-thread load of read from a successful push.
// TryPush and PushSlice return the same results as Producer's;
// VacantLen may report the cached, lower vacancy until the next refresh.
type CachedProducer[T any] struct {
	p          *Producer[T]
	cachedRead uint64
}

// NewCachedProducer wraps p. p must not be used directly afterward; all
// further operations should go through the returned CachedProducer so
// the cache and the ring stay consistent.
func NewCachedProducer[T any](p *Producer[T]) *CachedProducer[T] {
	return &CachedProducer[T]{p: p, cachedRead: p.r.read.Load()}
}

func (cp *CachedProducer[T]) cachedVacantLen() uint64 {
	return vacantLen(cp.cachedRead, cp.p.r.write.Load(), cp.p.r.capacity)
}

// refresh reloads the cached read position with an acquire load,
// reporting whether it observed forward progress.
func (cp *CachedProducer[T]) refresh() bool {
	fresh := cp.p.r.read.Load()
	advanced := fresh != cp.cachedRead
	cp.cachedRead = fresh
	return advanced
}

func (cp *CachedProducer[T]) Capacity() uint64 { return cp.p.Capacity() }

// OccupiedLen and IsEmpty are not cache-sensitive from the producer's
// side (the producer never caches its own write position), so they
// delegate straight to the underlying Observer to satisfy ObserverIface.
func (cp *CachedProducer[T]) OccupiedLen() uint64 { return cp.p.OccupiedLen() }
func (cp *CachedProducer[T]) IsEmpty() bool       { return cp.p.IsEmpty() }

func (cp *CachedProducer[T]) IsFull() bool { return cp.cachedVacantLen() == 0 && !cp.refresh() }
func (cp *CachedProducer[T]) VacantLen() uint64 {
	if cp.cachedVacantLen() == 0 {
		cp.refresh()
	}
	return cp.cachedVacantLen()
}

// TryPush behaves like Producer.TryPush, reloading the cached read
// position only when the cache claims the ring is full.
func (cp *CachedProducer[T]) TryPush(item T) error {
	if cp.cachedVacantLen() == 0 && !cp.refresh() {
		return &FullError[T]{Item: item}
	}
	return tryPush(cp.p.r, item)
}

// PushSlice behaves like Producer.PushSlice, refreshing the cache once
// up front rather than on every item.
func (cp *CachedProducer[T]) PushSlice(buf []T) int {
	cp.refresh()
	return pushSlice(cp.p.r, buf)
}

// Flush returns the underlying Producer for direct (uncached) use again.
// Nothing is written back: the cache only holds a copy of the consumer's
// read position.
func (cp *CachedProducer[T]) Flush() *Producer[T] { return cp.p }

// CachedConsumer is the dual of CachedProducer: it caches the
// producer's write position and reloads it only when the cache reports
// "empty". A pop that goes ahead is carried out by the same
// tryPop/popSlice that Consumer uses, and those load write themselves.
type CachedConsumer[T any] struct {
	c           *Consumer[T]
	cachedWrite uint64
}

// NewCachedConsumer wraps c. c must not be used directly afterward.
func NewCachedConsumer[T any](c *Consumer[T]) *CachedConsumer[T] {
	return &CachedConsumer[T]{c: c, cachedWrite: c.r.write.Load()}
}

func (cc *CachedConsumer[T]) cachedOccupiedLen() uint64 {
	return occupiedLen(cc.c.r.read.Load(), cc.cachedWrite, cc.c.r.capacity)
}

func (cc *CachedConsumer[T]) refresh() bool {
	fresh := cc.c.r.write.Load()
	advanced := fresh != cc.cachedWrite
	cc.cachedWrite = fresh
	return advanced
}

func (cc *CachedConsumer[T]) Capacity() uint64 { return cc.c.Capacity() }

// VacantLen and IsFull are not cache-sensitive from the consumer's side
// (the consumer never caches its own read position), so they delegate
// straight to the underlying Observer to satisfy ObserverIface.
func (cc *CachedConsumer[T]) VacantLen() uint64 { return cc.c.VacantLen() }
func (cc *CachedConsumer[T]) IsFull() bool      { return cc.c.IsFull() }

func (cc *CachedConsumer[T]) IsEmpty() bool { return cc.cachedOccupiedLen() == 0 && !cc.refresh() }
func (cc *CachedConsumer[T]) OccupiedLen() uint64 {
	if cc.cachedOccupiedLen() == 0 {
		cc.refresh()
	}
	return cc.cachedOccupiedLen()
}

// TryPop behaves like Consumer.TryPop, reloading the cached write
// position only when the cache claims the ring is empty.
func (cc *CachedConsumer[T]) TryPop() (T, bool) {
	var zero T
	if cc.cachedOccupiedLen() == 0 && !cc.refresh() {
		return zero, false
	}
	return tryPop(cc.c.r)
}

// PopSlice behaves like Consumer.PopSlice, refreshing the cache once up
// front rather than on every item.
func (cc *CachedConsumer[T]) PopSlice(out []T) int {
	cc.refresh()
	return popSlice(cc.c.r, out)
}

// PopIter is the cached equivalent of Consumer.PopIter.
func (cc *CachedConsumer[T]) PopIter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := cc.TryPop()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Flush releases the underlying Consumer for direct (uncached) use
// again.
func (cc *CachedConsumer[T]) Flush() *Consumer[T] { return cc.c }
