package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/models"
)

// ListDeployments lists deployments recorded in the registry
type ListDeployments struct {
	repo DeploymentRepository
}

// NewListDeployments creates a new list deployments use case
func NewListDeployments(repo DeploymentRepository) *ListDeployments {
	return &ListDeployments{repo: repo}
}

// ListDeploymentsParams contains filter parameters
type ListDeploymentsParams struct {
	Network   string
	Migration string
	Artifact  string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total       int
	ByNetwork   map[string]int
	ByMigration map[string]int
}

// Run lists deployments sorted by network, migration and creation time
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network:   params.Network,
		Migration: params.Migration,
		Artifact:  params.Artifact,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	sortDeployments(deployments)

	summary := DeploymentSummary{
		Total:       len(deployments),
		ByNetwork:   make(map[string]int),
		ByMigration: make(map[string]int),
	}
	for _, d := range deployments {
		summary.ByNetwork[d.Network]++
		summary.ByMigration[d.Migration]++
	}

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}

// sortDeployments orders deployments by network, migration and creation time
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		a, b := deployments[i], deployments[j]
		if a.Network != b.Network {
			return a.Network < b.Network
		}
		if a.Migration != b.Migration {
			return a.Migration < b.Migration
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
