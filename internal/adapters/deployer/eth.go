package deployer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rentchain/rentdeploy/internal/adapters/blockchain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// ClientSource hands out a connected chain client
type ClientSource interface {
	Client(ctx context.Context) (blockchain.ChainClient, error)
}

// EthDeployer broadcasts contract creation transactions and waits for them to be mined
type EthDeployer struct {
	cfg     *config.RuntimeConfig
	clients ClientSource
	log     *slog.Logger
}

// NewEthDeployer creates a broadcasting deployer
func NewEthDeployer(cfg *config.RuntimeConfig, clients ClientSource, log *slog.Logger) *EthDeployer {
	return &EthDeployer{cfg: cfg, clients: clients, log: log}
}

// Deploy sends the creation transaction and blocks until the contract has code on chain
func (d *EthDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.DeployReceipt, error) {
	sender, err := ResolveSender(d.cfg)
	if err != nil {
		return nil, err
	}
	if sender.Key == nil {
		return nil, fmt.Errorf("sender %s has no private key; it can only be used for dry runs", sender.Name)
	}

	client, err := d.clients.Client(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(sender.Key, new(big.Int).SetUint64(d.cfg.Network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, req.Artifact.ABI, req.Artifact.Bytecode, client, req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send creation transaction: %w", err)
	}

	d.log.Info("creation transaction sent", "artifact", req.Artifact.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted (block %d)", tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}

	code, err := client.CodeAt(ctx, address, receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("no contract code at %s after deployment", address.Hex())
	}

	result := &models.DeployReceipt{
		Address:     address.Hex(),
		TxHash:      tx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Deployer:    sender.Address.Hex(),
	}

	header, err := client.HeaderByNumber(ctx, receipt.BlockNumber)
	if err != nil {
		d.log.Debug("failed to fetch block header", "block", receipt.BlockNumber, "error", err)
	} else {
		result.BlockTime = time.Unix(int64(header.Time), 0)
	}

	return result, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*EthDeployer)(nil)
