// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

// WriteBytes pushes as many bytes from buf as fit, a thin wrapper over
// PushSlice for the byte instantiation of the ring. Go generics cannot
// specialize a method on one instantiation of a type parameter, so this
// is a free function instead — the idiomatic substitute for an
// io.Writer-shaped byte producer.
//
// Returns ErrWouldBlock only when the ring is full and len(buf) > 0; a
// zero-length buf always returns (0, nil) without touching the ring.
func WriteBytes(p *Producer[byte], buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n := p.PushSlice(buf)
	if n == 0 {
		return 0, ErrWouldBlock
	}
	return n, nil
}

// ReadBytes pops as many bytes as are available, up to len(buf),
// implementing the consumer side of the byte-stream shim. It never
// blocks and never errors: an empty ring simply yields (0, nil), the
// same "nothing available yet" signal TryPop's bool carries.
func ReadBytes(c *Consumer[byte], buf []byte) (int, error) {
	return c.PopSlice(buf), nil
}
