package trades

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/domain"
)

func TestFeedSequenceGuard(t *testing.T) {
	f := NewFeed()
	now := time.Now()

	newer := []domain.Trade{trade("101", 1, now)}
	older := []domain.Trade{trade("100", 1, now.Add(-time.Second))}

	// Poll 2 completes before poll 1.
	require.True(t, f.TryReplace(2, newer))
	assert.False(t, f.TryReplace(1, older))

	got := f.Current()
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].Price.String())
	assert.Equal(t, uint64(2), f.LastSeq())

	// A genuinely newer poll still applies.
	require.True(t, f.TryReplace(3, older))
	assert.Equal(t, uint64(3), f.LastSeq())
}

func TestFeedReplaceIsWholesale(t *testing.T) {
	f := NewFeed()
	now := time.Now()

	require.True(t, f.TryReplace(1, []domain.Trade{
		trade("100", 1, now),
		trade("101", 2, now),
	}))
	require.True(t, f.TryReplace(2, []domain.Trade{trade("102", 3, now)}))

	got := f.Current()
	require.Len(t, got, 1)
	assert.Equal(t, "102", got[0].Price.String())
}

func TestFeedEqualSequenceRejected(t *testing.T) {
	f := NewFeed()
	require.True(t, f.TryReplace(1, nil))
	assert.False(t, f.TryReplace(1, []domain.Trade{trade("100", 1, time.Now())}))
	assert.Empty(t, f.Current())
}
