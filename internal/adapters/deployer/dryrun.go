package deployer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// DryRunDeployer predicts the CREATE address each deployment would get without
// sending anything. The starting nonce is read from the network when reachable.
type DryRunDeployer struct {
	cfg     *config.RuntimeConfig
	clients ClientSource
	log     *slog.Logger

	mu     sync.Mutex
	sender *common.Address
	nonce  uint64
}

// NewDryRunDeployer creates a dry-run deployer
func NewDryRunDeployer(cfg *config.RuntimeConfig, clients ClientSource, log *slog.Logger) *DryRunDeployer {
	return &DryRunDeployer{cfg: cfg, clients: clients, log: log}
}

// Deploy checks that the constructor arguments pack and returns the predicted address
func (d *DryRunDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.DeployReceipt, error) {
	if _, err := req.Artifact.ABI.Pack("", req.Args...); err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sender == nil {
		d.init(ctx)
	}

	address := crypto.CreateAddress(*d.sender, d.nonce)
	d.nonce++

	return &models.DeployReceipt{
		Address:  address.Hex(),
		Deployer: d.sender.Hex(),
	}, nil
}

// init picks the sender and its starting nonce; anything unavailable falls back to zero
func (d *DryRunDeployer) init(ctx context.Context) {
	var addr common.Address
	if sender, err := ResolveSender(d.cfg); err == nil {
		addr = sender.Address
	} else {
		d.log.Debug("dry run without sender, using zero address", "error", err)
	}
	d.sender = &addr

	client, err := d.clients.Client(ctx)
	if err != nil {
		d.log.Debug("dry run without RPC, starting at nonce 0", "error", err)
		return
	}
	nonce, err := client.PendingNonceAt(ctx, addr)
	if err != nil {
		d.log.Debug("failed to read nonce, starting at 0", "error", err)
		return
	}
	d.nonce = nonce
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*DryRunDeployer)(nil)
