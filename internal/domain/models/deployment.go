package models

import (
	"fmt"
	"time"
)

// Deployment represents a contract deployed by a migration run
type Deployment struct {
	ID          string    `json:"id"` // e.g., "sepolia/lease/lease"
	RunID       string    `json:"runId"`
	Migration   string    `json:"migration"`
	Network     string    `json:"network"`
	ChainID     uint64    `json:"chainId"`
	Action      string    `json:"action"`
	Artifact    string    `json:"artifact"`
	Address     string    `json:"address"`
	TxHash      string    `json:"txHash,omitempty"`
	BlockNumber uint64    `json:"blockNumber,omitempty"`
	Deployer    string    `json:"deployer,omitempty"`
	Args        []string  `json:"args,omitempty"`
	DryRun      bool      `json:"dryRun,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DeploymentID builds the registry key of an action deployed on a network
func DeploymentID(network, migration, action string) string {
	return fmt.Sprintf("%s/%s/%s", network, migration, action)
}

// DeployReceipt is what a deployer returns once a contract creation is confirmed
type DeployReceipt struct {
	Address     string
	TxHash      string
	BlockNumber uint64
	BlockTime   time.Time
	Deployer    string
}
