package models

import (
	"testing"
	"time"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rollingRentMigration() *Migration {
	return &Migration{
		Name: "oracle-rolling-rent",
		Actions: []*DeployAction{
			{Name: "oracle", Artifact: "USDOracle"},
			{Name: "rent", Artifact: "RollingRent", Args: []*ArgSpec{
				Ref("oracle"),
				Param("landlord"),
				Param("tenant"),
			}},
		},
		Networks: map[string]*NetworkParams{
			"sepolia": {Params: map[string]string{
				"landlord": "0xb180cF51649691Db7864bB9f01B06ACf383Fb356",
				"tenant":   "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604",
			}},
		},
	}
}

func TestBuildPlan(t *testing.T) {
	plan, err := BuildPlan(rollingRentMigration(), "sepolia")
	require.NoError(t, err)

	assert.Equal(t, "oracle-rolling-rent", plan.Migration)
	assert.Equal(t, "sepolia", plan.Network)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, 0, plan.Steps[0].Index)
	assert.Equal(t, "oracle", plan.Steps[0].Action.Name)
	assert.Empty(t, plan.Steps[0].DependsOn)
	assert.Equal(t, 1, plan.Steps[1].Index)
	assert.Equal(t, []string{"oracle"}, plan.Steps[1].DependsOn)

	step, ok := plan.Step("rent")
	require.True(t, ok)
	assert.Equal(t, "RollingRent", step.Action.Artifact)

	_, ok = plan.Step("lease")
	assert.False(t, ok)
}

func TestBuildPlan_DependsOnIsDeduplicated(t *testing.T) {
	m := &Migration{
		Name: "twice",
		Actions: []*DeployAction{
			{Name: "oracle", Artifact: "USDOracle"},
			{Name: "rent", Artifact: "RollingRent", Args: []*ArgSpec{Ref("oracle"), Ref("oracle"), Lit("0x00")}},
		},
	}

	plan, err := BuildPlan(m, "anvil")
	require.NoError(t, err)
	assert.Equal(t, []string{"oracle"}, plan.Steps[1].DependsOn)
}

func TestBuildPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Migration)
		network string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "missing name",
			mutate:  func(m *Migration) { m.Name = "" },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "name is required",
		},
		{
			name:    "no actions",
			mutate:  func(m *Migration) { m.Actions = nil },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "has no actions",
		},
		{
			name:    "unnamed action",
			mutate:  func(m *Migration) { m.Actions[0].Name = "" },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "must have a name",
		},
		{
			name:    "missing artifact",
			mutate:  func(m *Migration) { m.Actions[0].Artifact = "" },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "must specify an artifact",
		},
		{
			name:    "duplicate action name",
			mutate:  func(m *Migration) { m.Actions[1].Name = "oracle" },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "duplicate action name 'oracle'",
		},
		{
			name: "forward reference",
			mutate: func(m *Migration) {
				m.Actions[0], m.Actions[1] = m.Actions[1], m.Actions[0]
			},
			wantIs:  domain.ErrForwardReference,
			wantMsg: "declared after it",
		},
		{
			name:    "self reference",
			mutate:  func(m *Migration) { m.Actions[1].Args[0] = Ref("rent") },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "cannot reference itself",
		},
		{
			name:    "unknown reference",
			mutate:  func(m *Migration) { m.Actions[1].Args[0] = Ref("feed") },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "unknown action 'feed'",
		},
		{
			name:    "parameter not defined for network",
			network: "mainnet",
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "network 'mainnet' does not define",
		},
		{
			name:    "empty argument",
			mutate:  func(m *Migration) { m.Actions[1].Args[1] = &ArgSpec{} },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "must set one of",
		},
		{
			name: "ambiguous argument",
			mutate: func(m *Migration) {
				v := "0x00"
				m.Actions[1].Args[1] = &ArgSpec{Value: &v, Param: "landlord"}
			},
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "more than one",
		},
		{
			name:    "bad timestamp offset",
			mutate:  func(m *Migration) { m.Actions[1].Args[1] = &ArgSpec{Timestamp: "one hour"} },
			wantIs:  domain.ErrInvalidPlan,
			wantMsg: "invalid timestamp offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := rollingRentMigration()
			if tt.mutate != nil {
				tt.mutate(m)
			}
			network := tt.network
			if network == "" {
				network = "sepolia"
			}

			_, err := BuildPlan(m, network)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantIs)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestArgSpec_Kind(t *testing.T) {
	tests := []struct {
		arg  *ArgSpec
		want ArgKind
		str  string
	}{
		{Lit("1500"), ArgKindValue, "1500"},
		{Lit(""), ArgKindValue, ""},
		{Param("landlord"), ArgKindParam, "$landlord"},
		{Ref("oracle"), ArgKindRef, "@oracle"},
		{Timestamp(time.Hour), ArgKindTimestamp, "now+1h0m0s"},
	}

	for _, tt := range tests {
		kind, err := tt.arg.Kind()
		require.NoError(t, err)
		assert.Equal(t, tt.want, kind)
		assert.Equal(t, tt.str, tt.arg.String())
	}

	assert.Equal(t, "<invalid>", (&ArgSpec{}).String())
}

func TestArgSpec_Offset(t *testing.T) {
	d, err := (&ArgSpec{Timestamp: "4h"}).Offset()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, d)

	_, err = (&ArgSpec{Timestamp: "soon"}).Offset()
	assert.Error(t, err)
}

func TestDeploymentID(t *testing.T) {
	assert.Equal(t, "sepolia/lease/lease", DeploymentID("sepolia", "lease", "lease"))
}
