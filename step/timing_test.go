package step

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTiming(wall time.Time) (*Timing, *int64) {
	clock := new(int64)
	tc := NewTimingWithClock(
		func() time.Time { return wall },
		func() int64 { return *clock },
	)
	return tc, clock
}

func TestTimingRecordNumbersAreMonotonic(t *testing.T) {
	t.Parallel()
	tc, _ := newTestTiming(time.Unix(1700000000, 0))

	var prev int64
	for i := 0; i < 50; i++ {
		r := tc.Record(BeforeGather, i+1, CmdGetText)
		require.Equal(t, prev+1, r.RecordNumber)
		prev = r.RecordNumber
	}
}

func TestTimingFirstStepHasNoSinceLastAction(t *testing.T) {
	t.Parallel()
	tc, clock := newTestTiming(time.Unix(1700000000, 0))

	first := tc.Record(BeforeAction, 1, CmdGet)
	assert.False(t, first.SinceLastAction.Valid)

	*clock = (100 * time.Millisecond).Nanoseconds()
	tc.Record(AfterAction, 1, CmdGet)

	*clock = (350 * time.Millisecond).Nanoseconds()
	second := tc.Record(BeforeAction, 2, CmdClick)
	require.True(t, second.SinceLastAction.Valid)
	assert.Equal(t, 250*time.Millisecond, second.SinceLastAction.Duration)
}

func TestTimingElapsedStepPairsBeforeAndAfter(t *testing.T) {
	t.Parallel()
	tc, clock := newTestTiming(time.Unix(1700000000, 0))

	before := tc.Record(BeforeAction, 1, CmdGet)
	assert.False(t, before.ElapsedStep.Valid)

	*clock = (1500 * time.Millisecond).Nanoseconds()
	after := tc.Record(AfterAction, 1, CmdGet)
	require.True(t, after.ElapsedStep.Valid)
	assert.Equal(t, 1500*time.Millisecond, after.ElapsedStep.Duration)
	assert.False(t, after.SinceLastAction.Valid)
}

func TestTimingGatherPhasesSkipActionCadence(t *testing.T) {
	t.Parallel()
	tc, clock := newTestTiming(time.Unix(1700000000, 0))

	// An action pair first, so the since-last marker is set.
	tc.Record(BeforeAction, 1, CmdGet)
	*clock = (100 * time.Millisecond).Nanoseconds()
	tc.Record(AfterAction, 1, CmdGet)

	*clock = (200 * time.Millisecond).Nanoseconds()
	before := tc.Record(BeforeGather, 2, CmdGetText)
	assert.False(t, before.SinceLastAction.Valid, "gathers are not part of the action cadence")

	*clock = (275 * time.Millisecond).Nanoseconds()
	after := tc.Record(AfterGather, 2, CmdGetText)
	require.True(t, after.ElapsedStep.Valid)
	assert.Equal(t, 75*time.Millisecond, after.ElapsedStep.Duration)

	// The gather pair must not have moved the since-last marker.
	*clock = (300 * time.Millisecond).Nanoseconds()
	next := tc.Record(BeforeAction, 3, CmdClick)
	require.True(t, next.SinceLastAction.Valid)
	assert.Equal(t, 200*time.Millisecond, next.SinceLastAction.Duration)
}

func TestTimingFailureHasNoTimingSideEffects(t *testing.T) {
	t.Parallel()
	tc, clock := newTestTiming(time.Unix(1700000000, 0))

	tc.Record(BeforeAction, 1, CmdGet)
	*clock = (100 * time.Millisecond).Nanoseconds()
	tc.Record(Failure, 1, CmdTestFailure)

	// The failure record must not have touched the elapsed marker.
	*clock = (150 * time.Millisecond).Nanoseconds()
	after := tc.Record(AfterAction, 1, CmdGet)
	require.True(t, after.ElapsedStep.Valid)
	assert.Equal(t, 150*time.Millisecond, after.ElapsedStep.Duration)
}

func TestTimingWallClockElapsedIsPlausible(t *testing.T) {
	t.Parallel()
	tc := NewTiming()

	tc.Record(BeforeAction, 1, CmdGet)
	time.Sleep(10 * time.Millisecond)
	after := tc.Record(AfterAction, 1, CmdGet)

	require.True(t, after.ElapsedStep.Valid)
	assert.GreaterOrEqual(t, after.ElapsedStep.Duration, 10*time.Millisecond)
	assert.Less(t, after.ElapsedStep.Duration, 5*time.Second)
}

func TestTimingInvalidPhasePanics(t *testing.T) {
	t.Parallel()
	tc, _ := newTestTiming(time.Unix(1700000000, 0))
	assert.Panics(t, func() { tc.Record(Phase(0), 1, CmdGet) })
	assert.Panics(t, func() { tc.Record(Phase(42), 1, CmdGet) })
}

func TestTimingsAreIndependentPerSession(t *testing.T) {
	t.Parallel()
	a, aClock := newTestTiming(time.Unix(1700000000, 0))
	b, bClock := newTestTiming(time.Unix(1700000000, 0))

	a.Record(BeforeAction, 1, CmdGet)
	*aClock = (100 * time.Millisecond).Nanoseconds()
	a.Record(AfterAction, 1, CmdGet)

	// Session b's markers are untouched by session a's activity.
	b.Record(BeforeAction, 1, CmdGet)
	*bClock = (30 * time.Millisecond).Nanoseconds()
	after := b.Record(AfterAction, 1, CmdGet)
	assert.Equal(t, 30*time.Millisecond, after.ElapsedStep.Duration)
	assert.Equal(t, int64(2), after.RecordNumber, "b numbered from its own counter")
}
