// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

// Transfer moves up to max items from src into dst in one pass, without
// an intermediate buffer, by pairing up src's occupied slices with dst's
// vacant slices and copying the common prefixes directly. A non-positive
// max means "as many as fit".
//
// src and dst may be two independent rings, or the same ring passed as
// both a Consumer and Producer obtained from RingBuffer.Split — either
// way the index discipline of each side is preserved: Transfer only
// calls the same occupiedSlices/vacantSlices + advance primitives a
// hand-written push/pop loop would.
func Transfer[T any](src *Consumer[T], dst *Producer[T], max int) int {
	limit := ^uint64(0)
	if max > 0 {
		limit = uint64(max)
	}

	srcFirst, srcSecond := src.r.occupiedSlices()
	dstFirst, dstSecond := dst.r.vacantSlices()

	total := uint64(0)
	total += transferPair(&srcFirst, &dstFirst, limit-total)
	total += transferPair(&srcFirst, &dstSecond, limit-total)
	total += transferPair(&srcSecond, &dstFirst, limit-total)
	total += transferPair(&srcSecond, &dstSecond, limit-total)

	src.r.advanceRead(total)
	dst.r.advanceWrite(total)
	return int(total)
}

// transferPair copies min(len(*from), len(*to), limit) items from *from
// into *to, shrinking both slices by the amount consumed so later calls
// in the same Transfer pass see only the remaining room.
func transferPair[T any](from, to *[]T, limit uint64) uint64 {
	n := uint64(len(*from))
	if uint64(len(*to)) < n {
		n = uint64(len(*to))
	}
	if limit < n {
		n = limit
	}
	if n == 0 {
		return 0
	}
	copy((*to)[:n], (*from)[:n])
	*from = (*from)[n:]
	*to = (*to)[n:]
	return n
}
