package output

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stepwatch/stepwatch/step"
)

func makeRecords(n int) []*step.Record {
	tc := step.NewTiming()
	records := make([]*step.Record, n)
	for i := range records {
		records[i] = tc.Record(step.BeforeGather, i+1, step.CmdGetText)
	}
	return records
}

func TestRecordBuffer(t *testing.T) {
	t.Parallel()
	records := makeRecords(5)
	buffer := RecordBuffer{}

	assert.Empty(t, buffer.GetBufferedRecords())
	buffer.AddRecords(records[:2])
	buffer.AddRecords(nil)
	buffer.AddRecords(records[2:])
	assert.Equal(t, records, buffer.GetBufferedRecords())
	assert.Empty(t, buffer.GetBufferedRecords())

	buffer.AddRecords(records[:1])
	assert.Equal(t, records[:1], buffer.GetBufferedRecords())
}

func TestRecordBufferConcurrently(t *testing.T) {
	t.Parallel()
	buffer := RecordBuffer{}
	records := makeRecords(10)

	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				buffer.AddRecords(records[j : j+1])
			}
			done <- struct{}{}
		}()
	}

	read := 0
	finished := 0
	for finished < 20 {
		select {
		case <-done:
			finished++
		default:
			read += len(buffer.GetBufferedRecords())
		}
	}
	read += len(buffer.GetBufferedRecords())
	assert.Equal(t, 200, read)
}

// Not parallel: goleak must not see goroutines spawned by sibling tests.
func TestPeriodicFlusher(t *testing.T) {
	defer goleak.VerifyNone(t)

	var flushes int64
	pf, err := NewPeriodicFlusher(5*time.Millisecond, func() {
		atomic.AddInt64(&flushes, 1)
	})
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	pf.Stop()
	pf.Stop() // idempotent

	final := atomic.LoadInt64(&flushes)
	assert.GreaterOrEqual(t, final, int64(2))
	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, final, atomic.LoadInt64(&flushes), "no flushes after Stop")
}

func TestPeriodicFlusherRejectsNonPositivePeriod(t *testing.T) {
	t.Parallel()
	_, err := NewPeriodicFlusher(0, func() {})
	require.Error(t, err)
	_, err = NewPeriodicFlusher(-time.Second, func() {})
	require.Error(t, err)
}
