package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainIDStub struct {
	id  int64
	err error
}

func (s chainIDStub) ChainID(context.Context) (*big.Int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return big.NewInt(s.id), nil
}

func TestVerifyChainID(t *testing.T) {
	ctx := context.Background()

	t.Run("matching", func(t *testing.T) {
		network := &config.Network{Name: "sepolia", ChainID: 11155111}
		require.NoError(t, VerifyChainID(ctx, chainIDStub{id: 11155111}, network))
	})

	t.Run("mismatch", func(t *testing.T) {
		network := &config.Network{Name: "sepolia", ChainID: 11155111}
		err := VerifyChainID(ctx, chainIDStub{id: 1}, network)
		assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
	})

	t.Run("adopts endpoint chain when unset", func(t *testing.T) {
		network := &config.Network{Name: "anvil"}
		require.NoError(t, VerifyChainID(ctx, chainIDStub{id: 31337}, network))
		assert.Equal(t, uint64(31337), network.ChainID)
		assert.True(t, network.IsLocal())
	})

	t.Run("rpc error", func(t *testing.T) {
		network := &config.Network{Name: "sepolia", ChainID: 1}
		err := VerifyChainID(ctx, chainIDStub{err: errors.New("connection refused")}, network)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestClientProvider_RequiresNetwork(t *testing.T) {
	p := NewClientProvider(&config.RuntimeConfig{})
	_, err := p.Client(context.Background())
	assert.ErrorContains(t, err, "no network selected")

	p = NewClientProvider(&config.RuntimeConfig{Network: &config.Network{Name: "x"}})
	_, err = p.Client(context.Background())
	assert.ErrorContains(t, err, "no rpc_url")
}
