package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/stepwatch/stepwatch/step"
)

// RecordBuffer is a simple thread-safe buffer for step records. Most outputs
// should use it: records should be flushed to their destination
// asynchronously, every so often, without ever blocking the instrumented
// session in the meantime.
type RecordBuffer struct {
	sync.Mutex
	buffer []*step.Record
	maxLen int
}

// AddRecords adds the given step records to the internal buffer.
func (rb *RecordBuffer) AddRecords(records []*step.Record) {
	rb.Lock()
	rb.buffer = append(rb.buffer, records...)
	rb.Unlock()
}

// GetBufferedRecords returns the currently buffered records and makes a new
// internal buffer with some hopefully realistic size.
func (rb *RecordBuffer) GetBufferedRecords() (buffered []*step.Record) {
	rb.Lock()
	buffered = rb.buffer
	if len(buffered) > rb.maxLen {
		rb.maxLen = len(buffered)
	}
	// Halfway between the last length and the maximum seen so far, to reduce
	// copying on the next growth.
	rb.buffer = make([]*step.Record, 0, (len(buffered)+rb.maxLen)/2)
	rb.Unlock()
	return buffered
}

// PeriodicFlusher is a small helper for asynchronously flushing buffered step
// records on regular intervals. The biggest benefit is having a Stop() method
// that waits for one last flush before it returns.
type PeriodicFlusher struct {
	period        time.Duration
	flushCallback func()
	stop          chan struct{}
	stopped       chan struct{}
}

func (pf *PeriodicFlusher) run() {
	ticker := time.NewTicker(pf.period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			pf.flushCallback()
		case <-pf.stop:
			pf.flushCallback()
			close(pf.stopped)
			return
		}
	}
}

// Stop waits for the periodic flusher to flush one last time and exit. You
// can safely call Stop() multiple times from different goroutines.
func (pf *PeriodicFlusher) Stop() {
	select {
	case <-pf.stop:
		// Already stopped
	default:
		close(pf.stop)
	}
	<-pf.stopped
}

// NewPeriodicFlusher creates a new PeriodicFlusher and starts its goroutine.
func NewPeriodicFlusher(period time.Duration, flushCallback func()) (*PeriodicFlusher, error) {
	if period <= 0 {
		return nil, fmt.Errorf("record flush period should be positive but was %s", period)
	}

	pf := &PeriodicFlusher{
		period:        period,
		flushCallback: flushCallback,
		stop:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go pf.run()

	return pf, nil
}
