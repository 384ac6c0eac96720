package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/domain"
)

func TestStoreSequenceGuard(t *testing.T) {
	s := NewStore()

	newer := map[string]domain.Balance{
		"usd": {Available: decimal.NewFromInt(900), Locked: decimal.NewFromInt(100)},
	}
	older := map[string]domain.Balance{
		"usd": {Available: decimal.NewFromInt(1000)},
	}

	require.True(t, s.TryReplace(2, newer))
	assert.False(t, s.TryReplace(1, older))

	got := s.Current()
	require.Contains(t, got, "usd")
	assert.Equal(t, "900", got["usd"].Available.String())
	assert.Equal(t, "100", got["usd"].Locked.String())
}

func TestStoreCurrentReturnsCopy(t *testing.T) {
	s := NewStore()
	require.True(t, s.TryReplace(1, map[string]domain.Balance{
		"btc": {Available: decimal.NewFromInt(1)},
	}))

	got := s.Current()
	delete(got, "btc")

	assert.Contains(t, s.Current(), "btc")
}
