package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fibermesh/core"
	"github.com/hupe1980/fibermesh/fiber"
	"github.com/hupe1980/fibermesh/wake"
)

func TestTick_WakesNextTickFibersInRegistrationOrder(t *testing.T) {
	sched := New()

	var order []string
	a := fiber.New(sched, func() {
		fiber.Yield()
		order = append(order, "a")
	})
	b := fiber.New(sched, func() {
		fiber.Yield()
		order = append(order, "b")
	})
	require.Equal(t, 2, sched.PendingLen())

	sched.Tick()

	assert.Equal(t, []string{"a", "b"}, order, "same-tick wakes follow registration order")
	assert.True(t, a.IsFinished())
	assert.True(t, b.IsFinished())
	assert.Zero(t, sched.PendingLen())
}

func TestTick_ConditionsInstalledMidTickWaitForNextTick(t *testing.T) {
	sched := New()

	f := fiber.New(sched, func() {
		fiber.Yield()
		fiber.Yield()
	})

	sched.Tick()
	assert.True(t, f.IsWaiting(), "the second yield's condition must not fire on the tick that woke the first")

	sched.Tick()
	assert.True(t, f.IsFinished())
}

func TestTick_AppliesDispatchedWakesBeforeEvaluation(t *testing.T) {
	sched := New()

	f := fiber.New(sched, func() { fiber.Suspend() })
	require.True(t, f.IsWaiting())

	sched.Dispatch(f)
	sched.Tick()

	assert.True(t, f.IsFinished())
}

func TestTick_DispatchWokenFiberYieldWaitsForNextTick(t *testing.T) {
	sched := New()

	resumes := 0
	f := fiber.New(sched, func() {
		fiber.Suspend()
		fiber.Yield()
	})
	f.OnRunning(func() { resumes++ })
	require.True(t, f.IsWaiting())

	sched.Dispatch(f)
	sched.Tick()

	assert.Equal(t, 1, resumes, "the yield after the dispatched wake must not fire on the same tick")
	assert.True(t, f.IsWaiting())

	sched.Tick()
	assert.Equal(t, 2, resumes)
	assert.True(t, f.IsFinished())
}

func TestTick_TimedNeverFiresBeforeDeadline(t *testing.T) {
	base := time.Now()
	now := base
	sched := New(func(o *Options) {
		o.Now = func() time.Time { return now }
	})

	f := fiber.New(sched, func() {
		fiber.YieldWith(wake.Timed(fiber.Current(), 50*time.Millisecond, base))
	})

	sched.Tick()
	assert.True(t, f.IsWaiting())

	now = base.Add(49 * time.Millisecond)
	sched.Tick()
	assert.True(t, f.IsWaiting(), "one millisecond short of the deadline")

	now = base.Add(50 * time.Millisecond)
	sched.Tick()
	assert.True(t, f.IsFinished())
}

func TestTick_SleepAnchorsToSchedulerClock(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	now := base
	sched := New(func(o *Options) {
		o.Now = func() time.Time { return now }
	})

	f := fiber.New(sched, func() {
		fiber.Sleep(30 * time.Millisecond)
	})

	sched.Tick()
	assert.True(t, f.IsWaiting())

	// the wall clock is irrelevant; only the injected clock moves the fiber
	now = base.Add(30 * time.Millisecond)
	sched.Tick()
	assert.True(t, f.IsFinished())
}

func TestTick_PollCadenceAndWakeOnTrue(t *testing.T) {
	base := time.Now()
	now := base
	sched := New(func(o *Options) {
		o.Now = func() time.Time { return now }
	})

	samples := 0
	ready := false
	f := fiber.New(sched, func() {
		fiber.YieldWith(wake.Poll(fiber.Current(), func() bool {
			samples++
			return ready
		}, 20*time.Millisecond))
	})

	sched.Tick()
	assert.Equal(t, 1, samples, "first tick samples")

	now = base.Add(10 * time.Millisecond)
	sched.Tick()
	assert.Equal(t, 1, samples, "inside the interval, no sample")

	now = base.Add(20 * time.Millisecond)
	sched.Tick()
	assert.Equal(t, 2, samples)
	require.True(t, f.IsWaiting())

	ready = true
	now = base.Add(40 * time.Millisecond)
	sched.Tick()
	assert.Equal(t, 3, samples)
	assert.True(t, f.IsFinished(), "wakes on the tick after the first true")
}

func TestRun_DrivesTicksUntilCanceled(t *testing.T) {
	sched := New(func(o *Options) {
		o.Config.TickPeriod = time.Millisecond
	})

	done := make(chan struct{})
	f := fiber.New(sched, func() {
		fiber.Sleep(5 * time.Millisecond)
		close(done)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sched.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sleeping fiber was never woken by Run")
	}
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.True(t, f.IsFinished())
}

func TestDispatch_MarshalsForeignWakesOntoTick(t *testing.T) {
	sched := New(func(o *Options) {
		o.Config.TickPeriod = time.Millisecond
	})

	done := make(chan struct{})
	f := fiber.New(sched, func() {
		fiber.Suspend()
		close(done)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Run(ctx) }()

	// wake from a foreign goroutine: must go through Dispatch, not Wake
	go sched.Dispatch(f)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatched wake never applied")
	}
}

func TestClose_UnwindsWaitingFibers(t *testing.T) {
	sched := New()

	var mu sync.Mutex
	var cleaned []string
	body := func(name string) func() {
		return func() {
			defer func() {
				mu.Lock()
				cleaned = append(cleaned, name)
				mu.Unlock()
			}()
			fiber.Suspend()
		}
	}

	a := fiber.New(sched, body("a"))
	b := fiber.New(sched, body("b"))
	require.Equal(t, 2, sched.PendingLen())

	sched.Close()

	assert.ElementsMatch(t, []string{"a", "b"}, cleaned)
	assert.True(t, a.IsFinished())
	assert.True(t, b.IsFinished())
	assert.Zero(t, sched.PendingLen())
}

type recordingHook struct {
	NoOpHook
	beforeTicks int
	afterTicks  int
	woken       []int
	wakes       int
}

func (h *recordingHook) BeforeTick(*Scheduler)         { h.beforeTicks++ }
func (h *recordingHook) AfterTick(_ *Scheduler, n int) { h.afterTicks++; h.woken = append(h.woken, n) }
func (h *recordingHook) OnWake(*Scheduler, core.Waker) { h.wakes++ }

func TestHooks_ObserveTicksAndWakes(t *testing.T) {
	hook := &recordingHook{}
	sched := New(func(o *Options) {
		o.Hooks = []Hook{hook}
	})

	fiber.New(sched, func() { fiber.Yield() })
	sched.Tick()
	sched.Tick()

	assert.Equal(t, 2, hook.beforeTicks)
	assert.Equal(t, 2, hook.afterTicks)
	assert.Equal(t, []int{1, 0}, hook.woken)
	assert.Equal(t, 1, hook.wakes)
}

func TestNew_ConfigDefaults(t *testing.T) {
	sched := New()
	assert.Equal(t, DefaultConfig.TickPeriod, sched.TickPeriod())

	custom := New(func(o *Options) {
		o.Config.TickPeriod = -1
		o.Config.DispatchBuffer = 0
	})
	assert.Equal(t, DefaultConfig.TickPeriod, custom.TickPeriod(), "non-positive period falls back to default")
}
