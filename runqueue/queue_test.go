package runqueue

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainRunsInFIFOOrder(t *testing.T) {
	q := New()

	var order []string
	q.Enqueue(func() { order = append(order, "A") })
	q.Enqueue(func() { order = append(order, "B") })
	q.Enqueue(func() { order = append(order, "C") })

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestDrainEmptyQueue(t *testing.T) {
	q := New()

	assert.Equal(t, 0, q.Drain())
	assert.Equal(t, 0, q.Drain())
}

func TestEnqueueDoesNotRunWork(t *testing.T) {
	q := New()

	ran := false
	q.Enqueue(func() { ran = true })

	assert.False(t, ran)
	assert.Equal(t, 1, q.Len())
}

func TestEnqueueIgnoresNil(t *testing.T) {
	q := New()
	q.Enqueue(nil)

	assert.Equal(t, 0, q.Len())
}

func TestPanickingItemDoesNotAbortDrain(t *testing.T) {
	q := New()

	var order []string
	q.Enqueue(func() { order = append(order, "A") })
	q.Enqueue(func() { panic("boom") })
	q.Enqueue(func() { order = append(order, "C") })

	assert.NotPanics(t, func() { q.Drain() })
	assert.Equal(t, []string{"A", "C"}, order)
}

func TestItemsEnqueuedWhileDrainingRunNextTime(t *testing.T) {
	q := New()

	var order []string
	q.Enqueue(func() {
		order = append(order, "outer")
		q.Enqueue(func() { order = append(order, "inner") })
	})

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"outer"}, order)

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestEnqueueFromManyGoroutines(t *testing.T) {
	q := New()

	const producers = 8
	const perProducer = 100

	// every producer appends increasing values, so the per producer
	// order must be preserved after draining
	seen := make([][]int, producers)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				q.Enqueue(func() { seen[p] = append(seen[p], i) })
			}
		}()
	}

	wg.Wait()

	require.Equal(t, producers*perProducer, q.Drain())

	for p := range producers {
		require.Len(t, seen[p], perProducer)
		for i := range perProducer {
			assert.Equal(t, i, seen[p][i])
		}
	}
}

func TestCallWaitsForRenderThread(t *testing.T) {
	q := New()

	result := make(chan int, 1)
	go func() {
		value := 0
		q.Call(func() { value = 42 })
		result <- value
	}()

	// the render thread keeps draining until the foreign call went through
	var value int
	for done := false; !done; {
		q.Drain()

		select {
		case value = <-result:
			done = true
		default:
		}
	}

	assert.Equal(t, 42, value)
}

func TestCallReportsExecution(t *testing.T) {
	q := New()

	result := make(chan bool, 1)
	go func() { result <- q.Call(func() {}) }()

	for q.Len() == 0 {
		runtime.Gosched()
	}

	q.Drain()
	assert.True(t, <-result)
}

func TestCallAfterCloseReturnsImmediately(t *testing.T) {
	q := New()
	q.Close()

	ran := false
	assert.False(t, q.Call(func() { ran = true }))
	assert.False(t, ran)
	assert.True(t, q.Closed())
}

func TestCloseReleasesWaitingCalls(t *testing.T) {
	q := New()

	result := make(chan bool, 1)
	go func() { result <- q.Call(func() {}) }()

	for q.Len() == 0 {
		runtime.Gosched()
	}

	q.Close()

	select {
	case ran := <-result:
		assert.False(t, ran)
	case <-time.After(time.Second):
		t.Fatal("Call still blocked after Close")
	}
}

func TestEnqueueAfterCloseIsDropped(t *testing.T) {
	q := New()
	q.Close()

	q.Enqueue(func() {})

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain())
}
