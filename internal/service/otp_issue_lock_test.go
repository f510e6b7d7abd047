package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalIssueLocker_SerializesSameKey(t *testing.T) {
	l := NewLocalIssueLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock2, err := l.Lock(ctx, "k")
		if err == nil {
			close(acquired)
			unlock2()
		}
	}()

	select {
	case <-acquired:
		t.Fatalf("second lock acquired while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second lock not acquired after release")
	}
}

func TestLocalIssueLocker_IndependentKeys(t *testing.T) {
	l := NewLocalIssueLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalIssueLocker_ContextCancel(t *testing.T) {
	l := NewLocalIssueLocker()

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Equal(t, 0, l.size(), "released keys must not be retained")
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisIssueLocker_AcquireAndRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedisIssueLocker(client, 5*time.Second)
	l.retry = 5 * time.Millisecond
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "VERIFY_EMAIL:jane@x.com")
	require.NoError(t, err)
	assert.True(t, mr.Exists("otp:issue:VERIFY_EMAIL:jane@x.com"))

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = l.Lock(waitCtx, "VERIFY_EMAIL:jane@x.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.False(t, mr.Exists("otp:issue:VERIFY_EMAIL:jane@x.com"))

	unlock2, err := l.Lock(ctx, "VERIFY_EMAIL:jane@x.com")
	require.NoError(t, err)
	unlock2()
}

func TestRedisIssueLocker_LeaseExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedisIssueLocker(client, time.Second)
	ctx := context.Background()

	_, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	unlock()
}

func TestRedisIssueLocker_UnlockKeepsForeignLease(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedisIssueLocker(client, time.Second)
	ctx := context.Background()

	staleUnlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	freshUnlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	staleUnlock()
	assert.True(t, mr.Exists("otp:issue:k"), "stale holder must not release a newer lease")

	freshUnlock()
	assert.False(t, mr.Exists("otp:issue:k"))
}

func TestRedisIssueLocker_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	l := NewRedisIssueLocker(client, time.Second)
	mr.Close()

	_, err = l.Lock(context.Background(), "k")
	assert.Error(t, err)
}
