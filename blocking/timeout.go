// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blocking

import "time"

// TimeoutIterator yields the remaining wait slice before each retry of a
// blocking push/pop's try-then-sleep loop, so a sequence of spurious
// wakeups never lets the total wait exceed the original timeout. It
// compares before subtracting to avoid underflowing the signed duration
// arithmetic once elapsed time reaches the original timeout.
type TimeoutIterator struct {
	start      time.Time
	timeout    time.Duration
	hasTimeout bool
}

// NewTimeoutIterator starts the clock now. hasTimeout false means "wait
// forever"; timeout is ignored in that case.
func NewTimeoutIterator(timeout time.Duration, hasTimeout bool) *TimeoutIterator {
	return &TimeoutIterator{start: time.Now(), timeout: timeout, hasTimeout: hasTimeout}
}

// Next returns the duration to wait for this retry. If the iterator was
// built without a timeout, remaining is meaningless, the returned
// hasTimeout is false ("wait forever") and ok is always true. If
// the original timeout has already elapsed, ok is false and the caller
// must stop retrying.
func (t *TimeoutIterator) Next() (remaining time.Duration, hasTimeout bool, ok bool) {
	if !t.hasTimeout {
		return 0, false, true
	}
	elapsed := time.Since(t.start)
	if t.timeout > elapsed {
		return t.timeout - elapsed, true, true
	}
	return 0, true, false
}
