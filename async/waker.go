// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package async wraps a ringbuf.Index with a single-slot waker and a
// closed flag, giving a future family that never blocks a goroutine. Go
// has no Future/Waker built into the language, so this package defines
// the minimal equivalent: a Waker is just a func(), and each future
// exposes a Poll(Waker) method following a check-register-recheck
// contract. Await builds an ordinary context.Context-driven blocking
// call on top of Poll for callers not themselves organized as an
// explicit poll loop.
package async

import "sync"

// Waker is a callback a future's Poll registers so the opposite side can
// schedule a future re-poll once progress becomes possible.
type Waker func()

// WakerSlot is a single-holder cell: registering a new waker replaces
// (and silently drops) any previous one, because only one task polls a
// given future at a time. Wake takes and invokes the currently stored
// waker, if any, and is idempotent with respect to repeated calls
// without an intervening Register.
type WakerSlot struct {
	mu sync.Mutex
	w  Waker
}

// Register stores w, replacing any waker registered previously.
func (s *WakerSlot) Register(w Waker) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// Wake invokes and clears the currently stored waker. A Wake with
// nothing registered is a no-op.
func (s *WakerSlot) Wake() {
	s.mu.Lock()
	w := s.w
	s.w = nil
	s.mu.Unlock()
	if w != nil {
		w()
	}
}
