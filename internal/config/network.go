package config

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// ChainIDFetcher asks an RPC endpoint for its chain ID
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names from rentdeploy.toml, caching resolved networks
type NetworkResolver struct {
	project    *config.ProjectConfig
	fetchChain ChainIDFetcher

	mu    sync.Mutex
	cache map[string]*config.Network
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	if project == nil {
		project = config.DefaultProjectConfig()
	}
	return &NetworkResolver{
		project:    project,
		fetchChain: fetchChainID,
		cache:      make(map[string]*config.Network),
	}
}

// GetNetworks returns the configured network names, sorted
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(r.project.Networks)
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network name to its configuration. When chain_id is
// not configured it is read from the endpoint; an unreachable endpoint leaves it
// at 0 so that offline commands keep working.
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if network, ok := r.cache[name]; ok {
		return network, nil
	}

	nc, ok := r.project.Networks[name]
	if !ok {
		var suggestions []string
		for i, match := range fuzzy.Find(name, r.GetNetworks(ctx)) {
			if i == 3 {
				break
			}
			suggestions = append(suggestions, match.Str)
		}
		return nil, domain.NotFoundWithSuggestionsErr{Kind: "network", Name: name, Suggestions: suggestions}
	}
	if nc.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url in %s", name, ProjectFile)
	}

	network := &config.Network{
		Name:        name,
		ChainID:     nc.ChainID,
		RPCURL:      nc.RPCURL,
		ExplorerURL: nc.ExplorerURL,
		Sender:      nc.Sender,
	}

	if network.ChainID == 0 && r.fetchChain != nil {
		if chainID, err := r.fetchChain(ctx, network.RPCURL); err == nil {
			network.ChainID = chainID
		}
	}
	if network.ExplorerURL == "" {
		network.ExplorerURL = defaultExplorerURL(network.ChainID)
	}

	r.cache[name] = network
	return network, nil
}

// fetchChainID dials the endpoint and reads eth_chainId
func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// defaultExplorerURL returns the block explorer of well-known chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}
