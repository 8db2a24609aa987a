// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package async

import (
	"sync/atomic"

	"github.com/jskootsky/ringbuf"
)

// Index decorates a plain ringbuf.Index with a waker slot and a closed
// flag. Every Store wakes whatever task last registered on this index,
// so the opposite side's Poll is scheduled to run again as soon as
// progress is possible.
type Index struct {
	inner  ringbuf.Index
	waker  WakerSlot
	closed atomic.Bool
}

// NewIndex wraps a fresh plain counter.
func NewIndex() *Index { return &Index{inner: ringbuf.NewIndex()} }

func (i *Index) Load() uint64 { return i.inner.Load() }

func (i *Index) Store(v uint64) {
	i.inner.Store(v)
	i.waker.Wake()
}

// Close sets closed and wakes the current registrant, so a pending poll
// observes the close instead of waiting for a progress event that will
// never come.
func (i *Index) Close() {
	i.closed.Store(true)
	i.waker.Wake()
}

func (i *Index) IsClosed() bool { return i.closed.Load() }

func (i *Index) RegisterWaker(w Waker) { i.waker.Register(w) }
