package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
)

// ChainClient is the part of an Ethereum client needed to deploy contracts
type ChainClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// ClientProvider dials the configured network lazily, once, and verifies that the
// endpoint serves the expected chain
type ClientProvider struct {
	cfg *config.RuntimeConfig

	mu     sync.Mutex
	client ChainClient
}

// NewClientProvider creates a new client provider
func NewClientProvider(cfg *config.RuntimeConfig) *ClientProvider {
	return &ClientProvider{cfg: cfg}
}

// Client returns a connected client for the selected network
func (p *ClientProvider) Client(ctx context.Context) (ChainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	network := p.cfg.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected")
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url", network.Name)
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	if err := VerifyChainID(ctx, client, network); err != nil {
		client.Close()
		return nil, err
	}

	p.client = client
	return client, nil
}

// VerifyChainID checks the endpoint's chain ID against the network configuration.
// A network without a configured chain ID adopts the endpoint's.
func VerifyChainID(ctx context.Context, client interface {
	ChainID(ctx context.Context) (*big.Int, error)
}, network *config.Network) error {
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	if network.ChainID == 0 {
		network.ChainID = chainID.Uint64()
		return nil
	}
	if chainID.Uint64() != network.ChainID {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, chainID.Uint64())
	}
	return nil
}
