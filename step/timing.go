package step

import (
	"fmt"
	"time"
)

// Timing holds the per-session state record construction needs: the record
// counter and the two monotonic markers the phase dispatch reads and writes.
//
// One Timing belongs to one instrumented session and must only be used from
// the goroutine driving that session; it does no locking of its own. Separate
// sessions in the same process each get their own Timing, so they never race
// on each other's markers.
type Timing struct {
	now  func() time.Time
	nano func() int64

	nextRecord    int64
	elapsedMark   int64 // set before a step, read after it
	sinceLastMark int64 // set at the end of an action, read before the next
}

// NewTiming returns a Timing backed by the wall clock and the runtime's
// monotonic clock.
func NewTiming() *Timing {
	base := time.Now()
	return NewTimingWithClock(time.Now, func() int64 {
		return time.Since(base).Nanoseconds()
	})
}

// NewTimingWithClock returns a Timing with an injected wall clock and
// monotonic nanosecond source. Tests use it to make timing deterministic.
func NewTimingWithClock(now func() time.Time, nano func() int64) *Timing {
	return &Timing{now: now, nano: nano, nextRecord: 1}
}

// Record constructs a record for one observation point, assigning it the next
// record number and applying the phase's timing side effects:
//
//   - BeforeAction measures the gap since the previous action ended (skipped
//     for the first step, which has no predecessor) and marks the step start.
//   - AfterAction marks the action end, then measures the elapsed step.
//   - BeforeGather only marks the step start: passive queries are not part of
//     the action cadence.
//   - AfterGather only measures the elapsed step.
//   - Failure has no timing side effects.
//
// An out-of-range phase panics: that is a bug in the calling instrumentation
// layer, not driver variability.
func (tc *Timing) Record(phase Phase, stepNumber int, cmd Cmd) *Record {
	if !phase.valid() {
		panic(fmt.Sprintf("step: invalid phase %d", int(phase)))
	}

	r := &Record{
		RecordNumber: tc.nextRecord,
		StepNumber:   stepNumber,
		Timestamp:    tc.now().UnixMilli(),
		Phase:        phase,
		Cmd:          cmd,
	}
	tc.nextRecord++

	switch phase {
	case BeforeAction:
		if stepNumber > 1 {
			r.SinceLastAction = NullDurationFrom(time.Duration(tc.nano() - tc.sinceLastMark))
		}
		tc.elapsedMark = tc.nano()
	case AfterAction:
		tc.sinceLastMark = tc.nano()
		r.ElapsedStep = NullDurationFrom(time.Duration(tc.nano() - tc.elapsedMark))
	case BeforeGather:
		tc.elapsedMark = tc.nano()
	case AfterGather:
		r.ElapsedStep = NullDurationFrom(time.Duration(tc.nano() - tc.elapsedMark))
	case Failure:
		// no timing side effects
	}

	return r
}
