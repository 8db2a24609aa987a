// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.
//
// Alternatively, you can license this code under a commercial license.
// Contact: joshua.skootsky@gmail.com

// Package ringbuf provides a wait-free, single-producer single-consumer
// (SPSC) ring buffer with O(1) operations and zero allocations per
// push/pop once constructed.
//
// # Thread-Safety Guarantees
//
// The ring core is lock-free and wait-free for its documented use case:
//   - A single goroutine may hold the Producer half and call its methods.
//   - A single goroutine may hold the Consumer half and call its methods.
//   - The Observer half may be cloned and read from any number of
//     goroutines; it never mutates the ring.
//
// Violating these constraints (more than one live Producer or Consumer
// for a given ring) causes data races and undefined behavior.
//
// # Frontends
//
// This package is the synchronous, non-blocking core. Two sibling
// packages build rendezvous frontends on top of it without touching the
// data path:
//   - ringbuf/blocking wraps an index with a binary semaphore, giving
//     Push/Pop calls that sleep with an optional timeout.
//   - ringbuf/async wraps an index with a single-slot waker, giving a
//     future family pollable from a hand-rolled event loop or driven
//     with context.Context via Await.
//
// # Usage Example
//
//	rb := ringbuf.New[int](64)
//	prod, cons := rb.Split()
//
//	go func() {
//	    defer prod.Close()
//	    for i := 0; i < 100; i++ {
//	        prod.TryPush(i)
//	    }
//	}()
//
//	defer cons.Close()
//	for i := 0; i < 100; i++ {
//	    if v, ok := cons.TryPop(); ok {
//	        fmt.Println(v)
//	    }
//	}
package ringbuf
