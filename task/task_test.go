package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fibermesh/core"
)

func TestGo_CompletesWithResult(t *testing.T) {
	tk := Go(func(ctx context.Context) (int, error) { return 42, nil })

	v, err := tk.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, tk.Finished())
	assert.False(t, tk.Canceled())
}

func TestGo_CompletesWithError(t *testing.T) {
	boom := errors.New("boom")
	tk := Go(func(ctx context.Context) (string, error) { return "", boom })

	_, err := tk.Wait()
	assert.ErrorIs(t, err, boom)
	assert.False(t, tk.Canceled())
}

func TestCancel_SurfacesAsCanceled(t *testing.T) {
	started := make(chan struct{})
	tk := Go(func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	})
	<-started

	tk.Cancel()
	v, err := tk.Wait()
	assert.ErrorIs(t, err, core.ErrTaskCanceled)
	assert.Zero(t, v)
	assert.True(t, tk.Canceled())
}

func TestCancel_AfterCompletionIsNoOp(t *testing.T) {
	tk := Go(func(ctx context.Context) (int, error) { return 7, nil })
	_, err := tk.Wait()
	require.NoError(t, err)

	tk.Cancel()
	v, err := tk.Result()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.False(t, tk.Canceled())
}

func TestSubscribe_FiresOnceOnCompletion(t *testing.T) {
	release := make(chan struct{})
	tk := Go(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	notified := make(chan struct{})
	tk.Subscribe(func() { close(notified) })

	close(release)
	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("completion subscriber never fired")
	}
}

func TestSubscribe_AfterCompletionFiresImmediately(t *testing.T) {
	tk := Go(func(ctx context.Context) (int, error) { return 1, nil })
	_, err := tk.Wait()
	require.NoError(t, err)

	fired := false
	tk.Subscribe(func() { fired = true })
	assert.True(t, fired)
}

func TestSubscribe_CancelRemovesSubscription(t *testing.T) {
	release := make(chan struct{})
	tk := Go(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	fired := false
	remove := tk.Subscribe(func() { fired = true })
	remove()

	close(release)
	_, err := tk.Wait()
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestID_Assigned(t *testing.T) {
	tk := Go(func(ctx context.Context) (int, error) { return 0, nil })
	assert.NotEmpty(t, tk.ID())
}
