package usecase

import (
	"context"
	"fmt"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// VerifyDeployments checks that recorded deployments still have code on-chain
type VerifyDeployments struct {
	cfg     *config.RuntimeConfig
	repo    DeploymentRepository
	checker CodeChecker
}

// NewVerifyDeployments creates a new verify deployments use case
func NewVerifyDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, checker CodeChecker) *VerifyDeployments {
	return &VerifyDeployments{cfg: cfg, repo: repo, checker: checker}
}

// VerifyDeploymentsParams contains parameters for verification
type VerifyDeploymentsParams struct {
	Migration string
}

// DeploymentCheck is the outcome for one deployment
type DeploymentCheck struct {
	Deployment *models.Deployment
	Exists     bool
	Error      error
}

// VerifyDeploymentsResult lists the checked deployments
type VerifyDeploymentsResult struct {
	Network string
	Checks  []*DeploymentCheck
	Missing int
}

// Run checks every deployment recorded for the selected network
func (uc *VerifyDeployments) Run(ctx context.Context, params VerifyDeploymentsParams) (*VerifyDeploymentsResult, error) {
	network := uc.cfg.Network
	if network == nil {
		return nil, fmt.Errorf("network is required (use --network)")
	}

	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network:   network.Name,
		Migration: params.Migration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	sortDeployments(deployments)

	result := &VerifyDeploymentsResult{Network: network.Name}
	for _, dep := range deployments {
		if dep.DryRun {
			continue
		}
		check := &DeploymentCheck{Deployment: dep}
		check.Exists, check.Error = uc.checker.HasCode(ctx, dep.Address)
		if check.Error == nil && !check.Exists {
			result.Missing++
		}
		result.Checks = append(result.Checks, check)
	}
	return result, nil
}
