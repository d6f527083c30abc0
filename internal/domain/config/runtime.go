package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Network is nil if not specified
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Yes            bool // Skip broadcast confirmation
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	DryRun bool
	Resume bool
	Build  bool

	// Resolved configurations
	ConfigSource  string // path of rentdeploy.toml, empty when running on defaults
	ProjectConfig *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Sender      string `json:"sender,omitempty"`
}

// IsLocal reports whether the network is a local development chain
func (n *Network) IsLocal() bool {
	switch n.ChainID {
	case 31337, 1337:
		return true
	}
	return false
}
