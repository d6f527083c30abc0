package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// CheckerAdapter looks up recorded deployments on the selected network
type CheckerAdapter struct {
	clients *ClientProvider
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter(clients *ClientProvider) *CheckerAdapter {
	return &CheckerAdapter{clients: clients}
}

// HasCode reports whether a contract exists at the given address
func (c *CheckerAdapter) HasCode(ctx context.Context, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("invalid address %q", address)
	}

	client, err := c.clients.Client(ctx)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// Ensure the adapter implements the interface
var _ usecase.CodeChecker = (*CheckerAdapter)(nil)
