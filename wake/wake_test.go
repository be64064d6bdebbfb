package wake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fibermesh/internal/testutil"
)

func TestNextTick_FiresOnceOnFirstEvaluation(t *testing.T) {
	w := testutil.NewWaker()
	c := NextTick(w)

	assert.True(t, c.Ready(time.Now()))
	assert.False(t, c.Ready(time.Now()), "already fired, must stay inert")
}

func TestNextTick_RetireSuppressesFiring(t *testing.T) {
	w := testutil.NewWaker()
	c := NextTick(w)

	c.Retire()
	assert.False(t, c.Ready(time.Now()))
}

func TestTimed_NeverFiresBeforeDeadline(t *testing.T) {
	w := testutil.NewWaker()
	start := time.Now()
	c := Timed(w, 50*time.Millisecond, start)

	assert.False(t, c.Ready(start))
	assert.False(t, c.Ready(start.Add(49*time.Millisecond)))
	assert.True(t, c.Ready(start.Add(50*time.Millisecond)))
	assert.False(t, c.Ready(start.Add(time.Hour)), "fires at most once")
}

func TestTimed_DeadlineAccessor(t *testing.T) {
	start := time.Now()
	c := Timed(testutil.NewWaker(), 10*time.Millisecond, start)
	assert.Equal(t, start.Add(10*time.Millisecond), c.Deadline())
}

func TestPoll_SamplesAtCadence(t *testing.T) {
	w := testutil.NewWaker()
	calls := 0
	c := Poll(w, func() bool { calls++; return false }, 20*time.Millisecond)

	start := time.Now()
	assert.False(t, c.Ready(start))
	assert.Equal(t, 1, calls, "first tick samples")

	assert.False(t, c.Ready(start.Add(10*time.Millisecond)))
	assert.Equal(t, 1, calls, "inside the interval, no sample")

	assert.False(t, c.Ready(start.Add(20*time.Millisecond)))
	assert.Equal(t, 2, calls, "interval elapsed, sampled again")
}

func TestPoll_ZeroIntervalSamplesEveryTick(t *testing.T) {
	calls := 0
	c := Poll(testutil.NewWaker(), func() bool { calls++; return false }, 0)

	now := time.Now()
	for i := 0; i < 3; i++ {
		c.Ready(now.Add(time.Duration(i) * time.Millisecond))
	}
	assert.Equal(t, 3, calls)
}

func TestPoll_FiresOnFirstTrue(t *testing.T) {
	ok := false
	c := Poll(testutil.NewWaker(), func() bool { return ok }, 0)

	now := time.Now()
	assert.False(t, c.Ready(now))
	ok = true
	assert.True(t, c.Ready(now.Add(time.Millisecond)))
	assert.False(t, c.Ready(now.Add(2*time.Millisecond)), "inert after firing")
}

func TestPoll_RetiredStopsSampling(t *testing.T) {
	calls := 0
	c := Poll(testutil.NewWaker(), func() bool { calls++; return true }, 0)
	c.Retire()
	assert.False(t, c.Ready(time.Now()))
	assert.Equal(t, 0, calls)
}

func TestEvent_SubscribesOnArmAndDispatchesOnce(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	w := testutil.NewWaker()
	src := testutil.NewEmitter()
	c := Event(sched, w, src, "ready")

	require.Equal(t, 0, src.SubscriberCount("ready"))
	c.Arm()
	require.Equal(t, 1, src.SubscriberCount("ready"))
	require.NoError(t, c.Err())

	src.Emit("ready")
	assert.Equal(t, 0, src.SubscriberCount("ready"), "unsubscribes after first delivery")
	require.Len(t, sched.Dispatched(), 1)

	// further emissions are ignored
	src.Emit("ready")
	assert.Len(t, sched.Dispatched(), 1)

	sched.Drain()
	assert.Equal(t, 1, w.Wakes())
}

func TestEvent_SubscriptionFailureWakesWithError(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	w := testutil.NewWaker()
	src := testutil.NewEmitter()
	src.Refuse("missing")

	c := Event(sched, w, src, "missing")
	c.Arm()

	require.Error(t, c.Err())
	require.Len(t, sched.Dispatched(), 1, "failed subscription still wakes the fiber")
}

func TestEvent_RetireDropsSubscription(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	src := testutil.NewEmitter()
	c := Event(sched, testutil.NewWaker(), src, "ready")
	c.Arm()

	c.Retire()
	assert.Equal(t, 0, src.SubscriberCount("ready"))

	src.Emit("ready")
	assert.Empty(t, sched.Dispatched(), "retired condition must not dispatch")
}

func TestFuture_DispatchesOnCompletion(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	w := testutil.NewWaker()
	h := testutil.NewHandle()

	c := Future(sched, w, h)
	c.Arm()
	require.Empty(t, sched.Dispatched())

	h.Complete()
	require.Len(t, sched.Dispatched(), 1)
	sched.Drain()
	assert.Equal(t, 1, w.Wakes())
}

func TestFuture_AlreadyFinishedHandleDispatchesAtArm(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	h := testutil.NewHandle()
	h.Complete()

	c := Future(sched, testutil.NewWaker(), h)
	c.Arm()
	assert.Len(t, sched.Dispatched(), 1)
}

func TestFuture_CancellationStillWakes(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	h := testutil.NewHandle()
	c := Future(sched, testutil.NewWaker(), h)
	c.Arm()

	h.Cancel()
	assert.Len(t, sched.Dispatched(), 1)
	assert.True(t, c.Handle().Canceled())
}

func TestFuture_RetireSuppressesLateCompletion(t *testing.T) {
	sched := testutil.NewScheduler(10 * time.Millisecond)
	h := testutil.NewHandle()
	c := Future(sched, testutil.NewWaker(), h)
	c.Arm()

	c.Retire()
	h.Complete()
	assert.Empty(t, sched.Dispatched())
}

func TestManual_NeverReady(t *testing.T) {
	c := Manual(testutil.NewWaker())
	now := time.Now()
	assert.False(t, c.Ready(now))
	assert.False(t, c.Ready(now.Add(time.Hour)))
}

func TestWaker_Accessor(t *testing.T) {
	w := testutil.NewWaker()
	assert.Same(t, w, NextTick(w).Waker().(*testutil.Waker))
}
