package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan domain.Snapshot) domain.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "channel closed")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return domain.Snapshot{}
	}
}

// startLive runs a live service until the returned stop func is called.
func startLive(t *testing.T, loader *fakeLoader, feed *fakeFeed, debounce time.Duration) (portssvc.LiveSvc, context.Context, func()) {
	t.Helper()
	svc := services.NewLiveService(loader, feed, debounce)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()
	return svc, ctx, func() {
		cancel()
		svc.Close()
		assert.NoError(t, <-done)
	}
}

func TestLiveService_InitialSnapshotThenUpdates(t *testing.T) {
	loader := &fakeLoader{snap: domain.Snapshot{TakenAt: fixedNow}}
	feed := newFakeFeed()
	svc, ctx, stop := startLive(t, loader, feed, 0)
	defer stop()

	ch, err := svc.Subscribe(ctx, nil)
	require.NoError(t, err)
	assert.True(t, receive(t, ch).TakenAt.Equal(fixedNow))

	later := fixedNow.Add(time.Minute)
	loader.set(domain.Snapshot{TakenAt: later})
	feed.emit(domain.CollectionJobs)

	assert.True(t, receive(t, ch).TakenAt.Equal(later))
}

func TestLiveService_DebounceCoalescesBursts(t *testing.T) {
	loader := &fakeLoader{}
	feed := newFakeFeed()
	svc, ctx, stop := startLive(t, loader, feed, 100*time.Millisecond)
	defer stop()

	ch, err := svc.Subscribe(ctx, nil)
	require.NoError(t, err)
	receive(t, ch)

	for i := 0; i < 5; i++ {
		feed.emit(domain.CollectionReviews)
	}
	receive(t, ch)

	// one initial load plus a single reload for the burst
	assert.Never(t, func() bool { return loader.loadCount() > 2 }, 300*time.Millisecond, 20*time.Millisecond)
}

func TestLiveService_CollectionFilter(t *testing.T) {
	loader := &fakeLoader{}
	feed := newFakeFeed()
	svc, ctx, stop := startLive(t, loader, feed, 0)
	defer stop()

	ch, err := svc.Subscribe(ctx, []domain.Collection{domain.CollectionReviews})
	require.NoError(t, err)
	receive(t, ch)

	feed.emit(domain.CollectionUsers)
	require.Eventually(t, func() bool { return loader.loadCount() == 2 }, time.Second, 10*time.Millisecond)
	select {
	case <-ch:
		t.Fatal("subscriber received a change to a collection it did not ask for")
	case <-time.After(100 * time.Millisecond):
	}

	feed.emit(domain.CollectionReviews)
	receive(t, ch)
}

func TestLiveService_ChannelClosesWithContext(t *testing.T) {
	loader := &fakeLoader{}
	feed := newFakeFeed()
	svc, _, stop := startLive(t, loader, feed, 0)
	defer stop()

	subCtx, cancel := context.WithCancel(context.Background())
	ch, err := svc.Subscribe(subCtx, nil)
	require.NoError(t, err)
	receive(t, ch)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestLiveService_SubscribeAfterClose(t *testing.T) {
	svc := services.NewLiveService(&fakeLoader{}, newFakeFeed(), 0)
	svc.Close()
	svc.Close()

	_, err := svc.Subscribe(context.Background(), nil)
	assert.ErrorIs(t, err, services.ErrLiveClosed)
}

func TestLiveService_InitialLoadError(t *testing.T) {
	svc := services.NewLiveService(&fakeLoader{err: assert.AnError}, newFakeFeed(), 0)
	defer svc.Close()

	_, err := svc.Subscribe(context.Background(), nil)
	assert.ErrorIs(t, err, assert.AnError)
}
