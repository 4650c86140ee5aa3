package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_BurstCollapsesToLastAction(t *testing.T) {
	d := New(50 * time.Millisecond)

	var calls int32
	var got atomic.Value

	for _, v := range []string{"a", "an", "ann", "anna"} {
		v := v
		d.Do(func() {
			atomic.AddInt32(&calls, 1)
			got.Store(v)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "anna", got.Load())
}

func TestDo_SeparateBurstsEachFire(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls int32
	d.Do(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(100 * time.Millisecond)

	d.Do(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStop_CancelsPending(t *testing.T) {
	d := New(50 * time.Millisecond)

	var calls int32
	d.Do(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	// after Stop, further actions are rejected
	d.Do(func() { atomic.AddInt32(&calls, 1) })
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFlush_RunsPendingImmediately(t *testing.T) {
	d := New(time.Hour)

	var calls int32
	d.Do(func() { atomic.AddInt32(&calls, 1) })
	d.Flush()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// nothing left pending
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
