// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package async

import "github.com/jskootsky/ringbuf"

// New builds a ring of the given capacity and splits it into an async
// Producer/Consumer pair, each backed by an Index carrying its own
// waker slot.
func New[T any](capacity int) (*Producer[T], *Consumer[T]) {
	readIdx := NewIndex()
	writeIdx := NewIndex()
	rb := ringbuf.NewWithIndices[T](capacity, readIdx, writeIdx)
	p, c := rb.Split()
	return &Producer[T]{inner: p, wait: readIdx}, &Consumer[T]{inner: c, wait: writeIdx}
}
