package usecase

import (
	"context"
	"sort"

	"github.com/rentchain/rentdeploy/internal/domain/config"
)

// ListNetworks lists the networks configured in rentdeploy.toml
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new list networks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{resolver: resolver}
}

// NetworkInfo is a configured network, or the error hit while resolving it
type NetworkInfo struct {
	Name    string
	Network *config.Network
	Error   error
}

// NetworkListResult contains the configured networks
type NetworkListResult struct {
	Networks []NetworkInfo
}

// Run resolves every configured network
func (uc *ListNetworks) Run(ctx context.Context) (*NetworkListResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	sort.Strings(names)

	result := &NetworkListResult{Networks: make([]NetworkInfo, 0, len(names))}
	for _, name := range names {
		network, err := uc.resolver.ResolveNetwork(ctx, name)
		result.Networks = append(result.Networks, NetworkInfo{
			Name:    name,
			Network: network,
			Error:   err,
		})
	}
	return result, nil
}
