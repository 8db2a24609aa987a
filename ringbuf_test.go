// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer_InvariantOccupiedPlusVacant(t *testing.T) {
	rb := New[int](8)
	for i := 0; i < 20; i++ {
		rb.TryPush(i)
		if i%3 == 0 {
			rb.TryPop()
		}
		assert.Equal(t, rb.Capacity(), rb.OccupiedLen()+rb.VacantLen())
	}
}

func TestRingBuffer_FIFOOrder(t *testing.T) {
	rb := New[int](4)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, rb.TryPush(v))
	}
	got := []int{}
	for {
		v, ok := rb.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestRingBuffer_CapacityOne(t *testing.T) {
	rb := New[int](1)
	assert.True(t, rb.IsEmpty())
	require.NoError(t, rb.TryPush(9))
	assert.True(t, rb.IsFull())
	_, ok := rb.TryPop()
	assert.True(t, ok)
	assert.True(t, rb.IsEmpty())
}

func TestRingBuffer_WrapAroundDecomposition(t *testing.T) {
	rb := New[int](4)
	for i := 0; i < 4; i++ {
		require.NoError(t, rb.TryPush(i))
	}
	for i := 0; i < 3; i++ {
		rb.TryPop()
	}
	for i := 4; i < 7; i++ {
		require.NoError(t, rb.TryPush(i))
	}
	got := []int{}
	for {
		v, ok := rb.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, got)
}

func TestRingBuffer_PushSlicePopSliceRoundTrip(t *testing.T) {
	rb := New[int](16)
	buf := []int{1, 2, 3, 4, 5, 6, 7}
	n := rb.PushSlice(buf)
	assert.Equal(t, len(buf), n)
	out := make([]int, len(buf))
	got := rb.PopSlice(out)
	assert.Equal(t, len(buf), got)
	assert.Equal(t, buf, out)
}

// Exercises a fill-then-drain sequence on a capacity-3 ring, including a
// rejected push once full, mirroring the kind of trace a pipeline stage
// would run through in production.
func TestFillDrainSequence(t *testing.T) {
	rb := New[int](3)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, rb.TryPush(v))
	}
	v, ok := rb.TryPop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	err := rb.TryPush(4)
	require.NoError(t, err)
	err = rb.TryPush(5)
	var fullErr *FullError[int]
	require.ErrorAs(t, err, &fullErr)
	assert.Equal(t, 5, fullErr.Item)

	got := []int{}
	for {
		v, ok := rb.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)
	assert.Zero(t, rb.OccupiedLen())
}

// Exercises an interleaved push/pop sequence on a split capacity-2 ring
// driven single-threaded, draining to empty at the end.
func TestSplitInterleavedPushPop(t *testing.T) {
	rb := New[int](2)
	p, c := rb.Split()
	require.NoError(t, p.TryPush(10))
	require.NoError(t, p.TryPush(20))

	v, ok := c.TryPop()
	require.True(t, ok)
	assert.Equal(t, 10, v)

	require.NoError(t, p.TryPush(30))

	v, ok = c.TryPop()
	require.True(t, ok)
	assert.Equal(t, 20, v)
	v, ok = c.TryPop()
	require.True(t, ok)
	assert.Equal(t, 30, v)

	_, ok = c.TryPop()
	assert.False(t, ok)
}

// Exercises the byte-stream shim's partial-write/partial-read semantics
// on a small capacity-3 ring.
func TestByteShimPartialReadWrite(t *testing.T) {
	rb := New[byte](3)
	p, c := rb.Split()

	n, err := WriteBytes(p, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out := make([]byte, 2)
	got, err := ReadBytes(c, out)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, "he", string(out[:got]))

	n, err = WriteBytes(p, []byte("lo"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	drained := make([]byte, 8)
	got, err = ReadBytes(c, drained)
	require.NoError(t, err)
	assert.Equal(t, "llo", string(drained[:got]))
}

func TestProducerConsumer_SplitAndClose(t *testing.T) {
	rb := New[int](4)
	p, c := rb.Split()
	require.NoError(t, p.TryPush(1))
	p.Close()
	v, ok := c.TryPop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.TryPop()
	assert.False(t, ok)
	c.Close()
	// Close is idempotent.
	c.Close()
	p.Close()
}

func TestCachedProducerConsumer(t *testing.T) {
	rb := New[int](8)
	p, c := rb.Split()
	cp := NewCachedProducer(p)
	cc := NewCachedConsumer(c)

	n := cp.PushSlice([]int{1, 2, 3, 4, 5})
	assert.Equal(t, 5, n)

	out := make([]int, 5)
	got := cc.PopSlice(out)
	assert.Equal(t, 5, got)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)

	assert.True(t, cc.IsEmpty())
	_, ok := cc.TryPop()
	assert.False(t, ok)
}

func TestCachedProducer_FullRefreshesOnDemand(t *testing.T) {
	rb := New[int](2)
	p, c := rb.Split()
	cp := NewCachedProducer(p)

	require.NoError(t, cp.TryPush(1))
	require.NoError(t, cp.TryPush(2))
	err := cp.TryPush(3)
	var fullErr *FullError[int]
	require.ErrorAs(t, err, &fullErr)

	_, ok := c.TryPop()
	require.True(t, ok)

	require.NoError(t, cp.TryPush(3))
}

func TestTransfer_BetweenTwoRings(t *testing.T) {
	src := New[int](4)
	dst := New[int](4)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, src.TryPush(v))
	}
	srcP, srcC := src.Split()
	_ = srcP
	dstP, dstC := dst.Split()
	_ = dstC

	n := Transfer(srcC, dstP, -1)
	assert.Equal(t, 3, n)

	got := []int{}
	for {
		v, ok := dst.TryPop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestTransfer_RespectsMax(t *testing.T) {
	src := New[int](4)
	dst := New[int](4)
	for _, v := range []int{1, 2, 3, 4} {
		require.NoError(t, src.TryPush(v))
	}
	_, srcC := src.Split()
	dstP, _ := dst.Split()

	n := Transfer(srcC, dstP, 2)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(2), src.OccupiedLen())
	assert.Equal(t, uint64(2), dst.OccupiedLen())
}

func TestPushIter_StopsOnVacancyAndSource(t *testing.T) {
	rb := New[int](3)
	i := 0
	next := func() (int, bool) {
		if i >= 10 {
			return 0, false
		}
		i++
		return i, true
	}
	n := rb.PushIter(next)
	assert.Equal(t, 3, n)
	assert.True(t, rb.IsFull())
}

func TestPopIter_RangesUntilEmpty(t *testing.T) {
	rb := New[int](4)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, rb.TryPush(v))
	}
	got := []int{}
	for v := range rb.PopIter() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, rb.IsEmpty())
}

func TestClear_DropsRemainingOccupiedCells(t *testing.T) {
	rb := New[int](4)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, rb.TryPush(v))
	}
	n := rb.Clear()
	assert.Equal(t, uint64(3), n)
	assert.True(t, rb.IsEmpty())
}

func TestEmptyRing_VacantFullOccupiedZero(t *testing.T) {
	rb := New[int](4)
	assert.Equal(t, uint64(4), rb.VacantLen())
	assert.Zero(t, rb.OccupiedLen())
}
