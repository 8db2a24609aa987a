// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

import "errors"

// Common ringbuf errors, checked with errors.Is, in the style of
// other_examples' drgolem-ringbuffer (ErrInsufficientSpace /
// ErrInsufficientData).
var (
	// ErrClosed is returned by the blocking and async adapters when the
	// opposite half has closed and no further progress is possible.
	ErrClosed = errors.New("ringbuf: closed")

	// ErrTimeout is returned by the blocking adapter when take(timeout)
	// expires before the operation could complete.
	ErrTimeout = errors.New("ringbuf: timeout")

	// ErrWouldBlock is returned by the byte-stream shim's WriteBytes when
	// the ring is full and the caller asked for a non-zero write.
	ErrWouldBlock = errors.New("ringbuf: would block")
)

// FullError is returned by TryPush when the ring has no vacant cell. It
// carries the rejected item back to the caller, the closest Go idiom to
// Rust's Err(item) return.
type FullError[T any] struct {
	Item T
}

func (e *FullError[T]) Error() string { return "ringbuf: full" }

// EmptyError is the error form of TryPop's false result. TryPop itself
// reports an empty ring through its bool and no function in this module
// returns EmptyError; it is exported for callers preferring error-based
// control flow, e.g. inside an errgroup.
type EmptyError struct{}

func (e *EmptyError) Error() string { return "ringbuf: empty" }
