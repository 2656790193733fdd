package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_DisabledWithoutKey(t *testing.T) {
	tr, err := NewTracker("", "", nil)
	require.NoError(t, err)

	assert.False(t, tr.Enabled())
	tr.Enqueue("m1", "api_v1_jobs", nil)
	assert.NoError(t, tr.Close())
}

func TestTracker_NilSafe(t *testing.T) {
	var tr *Tracker
	assert.False(t, tr.Enabled())
	tr.Enqueue("m1", "x", nil)
	assert.NoError(t, tr.Close())
}
