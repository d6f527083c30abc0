package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const (
	oracleAddr   = "0x4159466da2e1caa9a4151fd9cf232c6Dd940372A"
	landlordAddr = "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
	tenantAddr   = "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"
)

// MockMigrationRepository is a mock implementation of MigrationRepository
type MockMigrationRepository struct {
	mock.Mock
}

func (m *MockMigrationRepository) Load(ctx context.Context, ref string) (*models.Migration, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Migration), args.Error(1)
}

func (m *MockMigrationRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockRunStateRepository is a mock implementation of RunStateRepository
type MockRunStateRepository struct {
	mock.Mock
}

func (m *MockRunStateRepository) Load(ctx context.Context, migration, network string) (*models.RunState, error) {
	args := m.Called(ctx, migration, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RunState), args.Error(1)
}

func (m *MockRunStateRepository) Save(ctx context.Context, state *models.RunState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

// staticNetworks resolves networks from a fixed map
type staticNetworks map[string]*config.Network

func (s staticNetworks) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

func (s staticNetworks) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	n, ok := s[name]
	if !ok {
		return nil, domain.NotFoundWithSuggestionsErr{Kind: "network", Name: name}
	}
	return n, nil
}

// artifactStore serves artifacts from memory
type artifactStore map[string]*models.Artifact

func (s artifactStore) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	a, ok := s[name]
	if !ok {
		return nil, domain.NotFoundWithSuggestionsErr{Kind: "artifact", Name: name, Err: domain.ErrArtifactNotFound}
	}
	return a, nil
}

func (s artifactStore) ListArtifacts(ctx context.Context) ([]string, error) {
	var names []string
	for name := range s {
		names = append(names, name)
	}
	return names, nil
}

// passthroughEncoder hands the resolved strings to the deployer unchanged
type passthroughEncoder struct {
	fail map[string]error // keyed by value
}

func (e passthroughEncoder) Encode(inputs abi.Arguments, values []string) ([]any, error) {
	if len(inputs) != len(values) {
		return nil, fmt.Errorf("%w: expected %d arguments, got %d", domain.ErrInvalidArgument, len(inputs), len(values))
	}
	out := make([]any, len(values))
	for i, v := range values {
		if err, ok := e.fail[v]; ok {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fakeClock advances by step on every read
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
	last time.Time
}

func newFakeClock(start time.Time, step time.Duration) *fakeClock {
	return &fakeClock{now: start, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = c.now
	c.now = c.now.Add(c.step)
	return c.last
}

func (c *fakeClock) Last() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// deployCall is one call received by recordingDeployer
type deployCall struct {
	Artifact string
	Args     []any
	// ClockAt is the last time the clock handed out when the call arrived
	ClockAt time.Time
}

// recordingDeployer assigns sequential addresses and records every call
type recordingDeployer struct {
	clock  *fakeClock
	failOn map[string]error // keyed by artifact name
	// blockTime, when set, stamps each receipt with a mined block time
	blockTime func(call deployCall) time.Time
	calls     []deployCall
}

func (d *recordingDeployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.DeployReceipt, error) {
	call := deployCall{Artifact: req.Artifact.Name, Args: req.Args}
	if d.clock != nil {
		call.ClockAt = d.clock.Last()
	}
	d.calls = append(d.calls, call)

	if err, ok := d.failOn[req.Artifact.Name]; ok {
		return nil, err
	}

	n := len(d.calls)
	receipt := &models.DeployReceipt{
		Address:     fmt.Sprintf("0x%040x", 0xc0ffee00+n),
		TxHash:      fmt.Sprintf("0x%064x", n),
		BlockNumber: uint64(n),
		Deployer:    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	}
	if d.blockTime != nil {
		receipt.BlockTime = d.blockTime(call)
	}
	return receipt, nil
}

// recordingSink collects progress events
type recordingSink struct {
	events []usecase.ProgressEvent
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}
func (s *recordingSink) Info(string)  {}
func (s *recordingSink) Error(string) {}

func (s *recordingSink) stages() []string {
	stages := make([]string, len(s.events))
	for i, e := range s.events {
		stages[i] = e.Stage
	}
	return stages
}

// contractArtifact builds an artifact whose constructor takes the given types
func contractArtifact(name string, types ...string) *models.Artifact {
	inputs := make(abi.Arguments, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		inputs[i] = abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ}
	}
	a := &models.Artifact{Name: name, Bytecode: []byte{0x60, 0x80}}
	if len(inputs) > 0 {
		a.ABI.Constructor = abi.NewMethod("", "", abi.Constructor, "nonpayable", false, false, inputs, nil)
	}
	return a
}

func testArtifacts() artifactStore {
	return artifactStore{
		"Lease":       contractArtifact("Lease", "address", "address", "address", "uint256", "uint256", "uint256", "uint256"),
		"RollingRent": contractArtifact("RollingRent", "address", "address", "address"),
		"USDOracle":   contractArtifact("USDOracle"),
	}
}

func leaseMigration() *models.Migration {
	return &models.Migration{
		Name:   "lease",
		Source: "migrations/lease.yaml",
		Actions: []*models.DeployAction{{
			Name:     "lease",
			Artifact: "Lease",
			Args: []*models.ArgSpec{
				models.Param("oracle"),
				models.Lit(landlordAddr),
				models.Lit(tenantAddr),
				models.Timestamp(time.Hour),
				models.Lit("14400"),
				models.Lit("1500"),
				models.Lit("6"),
			},
		}},
		Networks: map[string]*models.NetworkParams{
			"anvil":   {Params: map[string]string{"oracle": oracleAddr}},
			"sepolia": {Params: map[string]string{"oracle": oracleAddr}},
		},
	}
}

func oracleRollingRentMigration() *models.Migration {
	return &models.Migration{
		Name:   "oracle-rolling-rent",
		Source: "migrations/oracle-rolling-rent.yaml",
		Actions: []*models.DeployAction{
			{Name: "oracle", Artifact: "USDOracle"},
			{Name: "rent", Artifact: "RollingRent", Args: []*models.ArgSpec{
				models.Ref("oracle"),
				models.Param("landlord"),
				models.Param("tenant"),
			}},
		},
		Networks: map[string]*models.NetworkParams{
			"anvil":   {Params: map[string]string{"landlord": landlordAddr, "tenant": tenantAddr}},
			"sepolia": {Params: map[string]string{"landlord": landlordAddr, "tenant": tenantAddr}},
		},
	}
}

func testNetworks() staticNetworks {
	return staticNetworks{
		"anvil":   {Name: "anvil", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
		"sepolia": {Name: "sepolia", ChainID: 11155111, RPCURL: "https://sepolia.example.org"},
	}
}
