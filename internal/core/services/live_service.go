package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
)

var ErrLiveClosed = errors.New("live service is closed")

// subscriber holds at most one undelivered snapshot.
type subscriber struct {
	mu          sync.Mutex
	ch          chan domain.Snapshot
	collections map[domain.Collection]bool
	closed      bool
}

func newSubscriber(collections []domain.Collection) *subscriber {
	sub := &subscriber{ch: make(chan domain.Snapshot, 1)}
	if len(collections) > 0 {
		sub.collections = make(map[domain.Collection]bool, len(collections))
		for _, c := range collections {
			sub.collections[c] = true
		}
	}
	return sub
}

// offer replaces any undelivered snapshot with snap.
func (sub *subscriber) offer(snap domain.Snapshot) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- snap
}

func (sub *subscriber) close() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if !sub.closed {
		sub.closed = true
		close(sub.ch)
	}
}

func (sub *subscriber) wants(changed map[domain.Collection]bool) bool {
	if sub.collections == nil {
		return true
	}
	for c := range changed {
		if sub.collections[c] {
			return true
		}
	}
	return false
}

type liveService struct {
	BaseService
	loader   portssvc.SnapshotLoader
	feed     portsrepo.ChangeFeed
	debounce time.Duration

	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	pending map[domain.Collection]bool
	trigger chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewLiveService creates a service that reloads the snapshot after record store changes.
// Bursts of changes arriving within debounce of each other cause a single reload.
func NewLiveService(loader portssvc.SnapshotLoader, feed portsrepo.ChangeFeed, debounce time.Duration) portssvc.LiveSvc {
	return &liveService{
		loader:   loader,
		feed:     feed,
		debounce: debounce,
		subs:     make(map[*subscriber]struct{}),
		pending:  make(map[domain.Collection]bool),
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

var _ portssvc.LiveSvc = (*liveService)(nil)

func (s *liveService) Subscribe(ctx context.Context, collections []domain.Collection) (<-chan domain.Snapshot, error) {
	select {
	case <-s.done:
		return nil, ErrLiveClosed
	default:
	}

	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load initial live snapshot")
		return nil, err
	}

	sub := newSubscriber(collections)
	sub.offer(snap)

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	count := len(s.subs)
	s.mu.Unlock()
	s.LogDebug(ctx, "Live subscriber added", slog.Int("subscribers", count))

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
		sub.close()
	}()
	return sub.ch, nil
}

func (s *liveService) Run(ctx context.Context) error {
	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.feed.Listen(listenCtx, s.onChange)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case err := <-errCh:
			if err != nil {
				s.LogError(ctx, err, "Change feed stopped")
			}
			return err
		case <-s.trigger:
			if s.debounce > 0 {
				timer := time.NewTimer(s.debounce)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case <-s.done:
					timer.Stop()
					return nil
				case <-timer.C:
				}
			}
			s.reload(ctx)
		}
	}
}

func (s *liveService) onChange(ev domain.ChangeEvent) {
	s.mu.Lock()
	s.pending[ev.Collection] = true
	s.mu.Unlock()
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *liveService) reload(ctx context.Context) {
	s.mu.Lock()
	changed := s.pending
	s.pending = make(map[domain.Collection]bool)
	s.mu.Unlock()
	if len(changed) == 0 {
		return
	}

	snap, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload live snapshot")
		return
	}

	s.mu.Lock()
	targets := make([]*subscriber, 0, len(s.subs))
	for sub := range s.subs {
		if sub.wants(changed) {
			targets = append(targets, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range targets {
		sub.offer(snap)
	}
	s.LogDebug(ctx, "Live snapshot delivered", slog.Int("subscribers", len(targets)))
}

func (s *liveService) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
