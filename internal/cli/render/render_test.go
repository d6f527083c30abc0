package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/fatih/color"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func oracleRentPlan() *models.ExecutionPlan {
	landlord := "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
	return &models.ExecutionPlan{
		Migration: "oracle-rolling-rent",
		Network:   "anvil",
		Steps: []*models.ExecutionStep{
			{Index: 0, Action: &models.DeployAction{Name: "oracle", Artifact: "USDOracle"}},
			{Index: 1, Action: &models.DeployAction{
				Name:     "rent",
				Artifact: "RollingRent",
				Args:     []*models.ArgSpec{models.Ref("oracle"), models.Lit(landlord), models.Param("tenant")},
			}, DependsOn: []string{"oracle"}},
		},
	}
}

func TestRenderMigrationResult(t *testing.T) {
	plan := oracleRentPlan()
	network := &config.Network{Name: "anvil", ChainID: 31337}

	t.Run("success", func(t *testing.T) {
		var out bytes.Buffer
		result := &usecase.MigrationResult{
			RunID:   "run-1",
			Plan:    plan,
			Network: network,
			ExecutedSteps: []*usecase.StepResult{
				{Step: plan.Steps[0]}, {Step: plan.Steps[1]},
			},
			Success:   true,
			Addresses: map[string]string{"oracle": "0x5FbDB2315678afecb367f032d93F642f64180aa3", "rent": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"},
		}
		require.NoError(t, NewMigrationRenderer(&out).RenderMigrationResult(result))

		s := out.String()
		assert.Contains(t, s, "Successfully migrated oracle-rolling-rent on anvil")
		assert.Contains(t, s, "Status: Completed")
		assert.Contains(t, s, "Steps completed: 2/2")
		assert.Contains(t, s, "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
		assert.NotContains(t, s, "--resume")
	})

	t.Run("failure", func(t *testing.T) {
		var out bytes.Buffer
		failed := &usecase.StepResult{Step: plan.Steps[1], Error: errors.New("deploy rent (RollingRent): reverted")}
		result := &usecase.MigrationResult{
			RunID:         "run-2",
			Plan:          plan,
			Network:       network,
			ExecutedSteps: []*usecase.StepResult{{Step: plan.Steps[0]}, failed},
			FailedStep:    failed,
			Addresses:     map[string]string{"oracle": "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		}
		require.NoError(t, NewMigrationRenderer(&out).RenderMigrationResult(result))

		s := out.String()
		assert.Contains(t, s, "Migration failed")
		assert.Contains(t, s, "Status: Failed")
		assert.Contains(t, s, "Failed at step: rent")
		assert.Contains(t, s, "Steps completed: 1/2")
		assert.Contains(t, s, "--resume")
	})

	t.Run("explorer links", func(t *testing.T) {
		sepolia := &config.Network{Name: "sepolia", ChainID: 11155111, ExplorerURL: "https://sepolia.etherscan.io/"}
		tx := "0x4c4c6b1f5e2d8d7bba1c0f3c1cba7d51f1a4e1c2b4d7a3f9e8c6b5a4d3c2b1a0"
		result := &usecase.MigrationResult{
			RunID:   "run-3",
			Plan:    plan,
			Network: sepolia,
			ExecutedSteps: []*usecase.StepResult{
				{Step: plan.Steps[0], Receipt: &models.DeployReceipt{Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3", TxHash: tx}},
			},
			Success:   true,
			Addresses: map[string]string{"oracle": "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		}

		var out bytes.Buffer
		require.NoError(t, NewMigrationRenderer(&out).RenderMigrationResult(result))
		assert.Contains(t, out.String(), "https://sepolia.etherscan.io/address/0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, out.String(), "https://sepolia.etherscan.io/tx/"+tx)

		out.Reset()
		result.DryRun = true
		require.NoError(t, NewMigrationRenderer(&out).RenderMigrationResult(result))
		assert.NotContains(t, out.String(), "etherscan")
	})
}

func TestRenderNetworksList(t *testing.T) {
	var out bytes.Buffer
	result := &usecase.NetworkListResult{Networks: []usecase.NetworkInfo{
		{Name: "anvil", Network: &config.Network{Name: "anvil", ChainID: 31337}},
		{Name: "sepolia", Network: &config.Network{Name: "sepolia", ChainID: 11155111, ExplorerURL: "https://sepolia.etherscan.io"}},
		{Name: "broken", Error: errors.New("rpc_url is required")},
	}}
	require.NoError(t, NewNetworksRenderer(&out).RenderNetworksList(result))

	s := out.String()
	assert.Contains(t, s, "anvil - Chain ID: 31337 (local)")
	assert.Contains(t, s, "sepolia - Chain ID: 11155111 - https://sepolia.etherscan.io")
	assert.Contains(t, s, "broken - Error: rpc_url is required")
}

func TestRenderPlan(t *testing.T) {
	plan := oracleRentPlan()

	addressTy, err := abi.NewType("address", "", nil)
	require.NoError(t, err)
	rentABI := abi.ABI{Constructor: abi.NewMethod("", "", abi.Constructor, "nonpayable", false, false, abi.Arguments{
		{Name: "oracle", Type: addressTy},
		{Name: "landlord", Type: addressTy},
		{Name: "tenant", Type: addressTy},
	}, nil)}

	result := &usecase.PlanResult{
		Migration: &models.Migration{Name: plan.Migration, Description: "oracle and rolling rent"},
		Plan:      plan,
		Network:   &config.Network{Name: "anvil", ChainID: 31337},
		Artifacts: map[string]*models.Artifact{
			"USDOracle":   {Name: "USDOracle"},
			"RollingRent": {Name: "RollingRent", ABI: rentABI},
		},
		Preview: map[string][]string{
			"oracle": nil,
			"rent":   {"0x0000000000000000000000000000000000000000", "0xb180cF51649691Db7864bB9f01B06ACf383Fb356", "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewPlanRenderer(&out).RenderPlan(result))

	s := out.String()
	assert.Contains(t, s, "Migration oracle-rolling-rent - oracle and rolling rent")
	assert.Contains(t, s, "address oracle")
	assert.Contains(t, s, "@oracle (#1)")
	assert.Contains(t, s, "$tenant")
	assert.Contains(t, s, "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604")
}

func TestRenderDeploymentList(t *testing.T) {
	var out bytes.Buffer
	r := NewDeploymentsRenderer(&out, false)

	require.NoError(t, r.RenderDeploymentList(&usecase.DeploymentListResult{}))
	assert.Contains(t, out.String(), "No deployments found")

	out.Reset()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &usecase.DeploymentListResult{
		Deployments: []*models.Deployment{
			{Network: "anvil", ChainID: 31337, Migration: "lease", Action: "lease", Artifact: "Lease", Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3", CreatedAt: created},
			{Network: "sepolia", ChainID: 11155111, Migration: "lease", Action: "lease", Artifact: "Lease", Address: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0", CreatedAt: created},
		},
		Summary: usecase.DeploymentSummary{Total: 2, ByNetwork: map[string]int{"anvil": 1, "sepolia": 1}},
	}
	require.NoError(t, r.RenderDeploymentList(result))

	s := out.String()
	assert.Contains(t, s, "anvil (chain 31337)")
	assert.Contains(t, s, "sepolia (chain 11155111)")
	assert.Contains(t, s, "2024-03-01 12:00:00")
	assert.Contains(t, s, "Total: 2 deployment(s) on 2 network(s)")
}

func TestRenderVerifyResult(t *testing.T) {
	var out bytes.Buffer
	result := &usecase.VerifyDeploymentsResult{
		Network: "anvil",
		Checks: []*usecase.DeploymentCheck{
			{Deployment: &models.Deployment{Migration: "lease", Action: "lease", Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"}, Exists: true},
			{Deployment: &models.Deployment{Migration: "oracle-rolling-rent", Action: "oracle", Address: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"}},
		},
		Missing: 1,
	}
	require.NoError(t, NewDeploymentsRenderer(&out, false).RenderVerifyResult(result))
	assert.Contains(t, out.String(), "✓ deployed")
	assert.Contains(t, out.String(), "✗ no code")
}
