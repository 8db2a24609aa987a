// Copyright (c) 2025 Joshua Skootsky
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blocking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jskootsky/ringbuf"
)

func TestPushPop_Roundtrip(t *testing.T) {
	p, c := New[int](4)
	require.NoError(t, p.Push(1, 0, false))
	v, err := c.Pop(0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

// A pop with a short timeout on an empty, producer-less ring returns
// ErrTimeout; a subsequent push then unblocks a later pop normally.
func TestPop_TimeoutThenSucceeds(t *testing.T) {
	p, c := New[int](1)

	_, err := c.Pop(10*time.Millisecond, true)
	assert.ErrorIs(t, err, ringbuf.ErrTimeout)

	require.NoError(t, p.Push(7, 0, false))
	v, err := c.Pop(0, false)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestPop_BlocksUntilPush(t *testing.T) {
	p, c := New[int](1)
	var g errgroup.Group
	g.Go(func() error {
		v, err := c.Pop(time.Second, true)
		if err != nil {
			return err
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
		return nil
	})
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, p.Push(42, 0, false))
	require.NoError(t, g.Wait())
}

func TestPop_ReturnsClosedWhenDrainedAfterProducerCloses(t *testing.T) {
	p, c := New[int](2)
	require.NoError(t, p.Push(1, 0, false))
	p.Close()

	v, err := c.Pop(0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = c.Pop(time.Second, true)
	assert.ErrorIs(t, err, ringbuf.ErrClosed)
}

func TestPush_ReturnsClosedWhenConsumerCloses(t *testing.T) {
	p, c := New[int](1)
	require.NoError(t, p.Push(1, 0, false))

	var g errgroup.Group
	g.Go(func() error {
		return p.Push(2, time.Second, true)
	})
	time.Sleep(10 * time.Millisecond)
	c.Close()

	err := g.Wait()
	assert.ErrorIs(t, err, ringbuf.ErrClosed)
}

func TestPushSlice_PartialOnConsumerClose(t *testing.T) {
	p, c := New[int](2)
	var g errgroup.Group
	var n int
	var pushErr error
	g.Go(func() error {
		n, pushErr = p.PushSlice([]int{1, 2, 3, 4, 5}, time.Second, true)
		return nil
	})
	time.Sleep(10 * time.Millisecond)
	c.Close()
	require.NoError(t, g.Wait())
	assert.ErrorIs(t, pushErr, ringbuf.ErrClosed)
	assert.Less(t, n, 5)
}

func TestSemaphore_GiveIsIdempotentUntilTaken(t *testing.T) {
	sem := NewStdSemaphore()
	sem.Give()
	sem.Give()
	assert.True(t, sem.TryTake())
	assert.False(t, sem.TryTake())
}

func TestTimeoutIterator_NeverUnderflows(t *testing.T) {
	it := NewTimeoutIterator(5*time.Millisecond, true)
	start := time.Now()
	count := 0
	for {
		remaining, _, ok := it.Next()
		if !ok {
			break
		}
		require.Greater(t, remaining, time.Duration(0))
		require.LessOrEqual(t, remaining, 5*time.Millisecond)
		count++
		if count > 1000 {
			t.Fatal("timeout iterator did not converge")
		}
		time.Sleep(remaining)
	}
	assert.True(t, time.Since(start) < time.Second)
}

func TestTimeoutIterator_NoTimeoutNeverStops(t *testing.T) {
	it := NewTimeoutIterator(0, false)
	for i := 0; i < 5; i++ {
		_, hasTimeout, ok := it.Next()
		require.True(t, ok)
		assert.False(t, hasTimeout)
	}
}
