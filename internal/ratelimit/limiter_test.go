package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDisabledReturnsNil(t *testing.T) {
	assert.Nil(t, New("tmdb", 0))
	assert.Nil(t, New("tmdb", -5))
}

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, l.Wait(ctx))
	assert.Equal(t, "", l.Name())
}

func TestWaitHonoursBurst(t *testing.T) {
	l := New("kinopoisk", 3)
	require.NotNil(t, l)
	assert.Equal(t, "kinopoisk", l.Name())

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
}

func TestWaitCancelledContext(t *testing.T) {
	l := New("tmdb", 1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for tmdb")
}
