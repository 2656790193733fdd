package services

import (
	"testing"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSubscriber_OfferKeepsLatest(t *testing.T) {
	sub := newSubscriber(nil)
	first := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		sub.offer(domain.Snapshot{TakenAt: first.Add(time.Duration(i) * time.Minute)})
	}

	got := <-sub.ch
	assert.True(t, got.TakenAt.Equal(first.Add(2*time.Minute)))
	select {
	case <-sub.ch:
		t.Fatal("only the latest snapshot should be buffered")
	default:
	}
}

func TestSubscriber_OfferAfterCloseIsIgnored(t *testing.T) {
	sub := newSubscriber(nil)
	sub.close()
	sub.close()

	assert.NotPanics(t, func() { sub.offer(domain.Snapshot{}) })
}

func TestSubscriber_Wants(t *testing.T) {
	all := newSubscriber(nil)
	reviews := newSubscriber([]domain.Collection{domain.CollectionReviews})
	changed := map[domain.Collection]bool{domain.CollectionJobs: true}

	assert.True(t, all.wants(changed))
	assert.False(t, reviews.wants(changed))
	changed[domain.CollectionReviews] = true
	assert.True(t, reviews.wants(changed))
}
