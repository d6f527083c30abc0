package deployer

import (
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// ProvideDeployer selects the deployer for the current run mode
func ProvideDeployer(cfg *config.RuntimeConfig, eth *EthDeployer, dry *DryRunDeployer) usecase.ContractDeployer {
	if cfg.DryRun {
		return dry
	}
	return eth
}
