package template

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// StarterTemplatesAdapter renders the files written by `rentdeploy init`
type StarterTemplatesAdapter struct {
	cfg *config.RuntimeConfig
}

// NewStarterTemplatesAdapter creates a new starter templates adapter
func NewStarterTemplatesAdapter(cfg *config.RuntimeConfig) *StarterTemplatesAdapter {
	return &StarterTemplatesAdapter{cfg: cfg}
}

type projectTemplateData struct {
	Format       config.ArtifactFormat
	ArtifactsDir string
}

// Files returns the starter files keyed by path relative to the project root
func (s *StarterTemplatesAdapter) Files(ctx context.Context) (map[string][]byte, error) {
	data := s.detectLayout()

	var project bytes.Buffer
	tmpl, err := template.New("rentdeploy.toml").Parse(projectTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project template: %w", err)
	}
	if err := tmpl.Execute(&project, data); err != nil {
		return nil, fmt.Errorf("failed to render project template: %w", err)
	}

	return map[string][]byte{
		"rentdeploy.toml":                     project.Bytes(),
		".env.example":                        []byte(envExample),
		"migrations/lease.yaml":               []byte(leaseMigration),
		"migrations/oracle-rolling-rent.yaml": []byte(oracleRollingRentMigration),
		"migrations/rolling-rent.yaml":        []byte(rollingRentMigration),
	}, nil
}

// detectLayout picks Truffle when the project has a truffle config, Foundry otherwise
func (s *StarterTemplatesAdapter) detectLayout() projectTemplateData {
	for _, name := range []string{"truffle-config.js", "truffle.js"} {
		if _, err := os.Stat(filepath.Join(s.cfg.ProjectRoot, name)); err == nil {
			return projectTemplateData{
				Format:       config.ArtifactFormatTruffle,
				ArtifactsDir: "build/contracts",
			}
		}
	}
	return projectTemplateData{Format: config.ArtifactFormatFoundry, ArtifactsDir: "out"}
}

const projectTemplate = `[artifacts]
format = "{{.Format}}"
dir = "{{.ArtifactsDir}}"

[migrations]
dir = "migrations"

[networks.anvil]
rpc_url = "http://127.0.0.1:8545"
chain_id = 31337
sender = "anvil"

[networks.sepolia]
rpc_url = "${SEPOLIA_RPC_URL}"
chain_id = 11155111
explorer_url = "https://sepolia.etherscan.io"
sender = "deployer"

# First account of the default anvil/hardhat mnemonic
[senders.anvil]
private_key = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

[senders.deployer]
private_key = "${DEPLOYER_PRIVATE_KEY}"
`

const envExample = `SEPOLIA_RPC_URL=https://rpc.sepolia.org
DEPLOYER_PRIVATE_KEY=
`

const leaseMigration = `name: lease
description: Lease priced in USD through an existing oracle, first payment one hour after deployment
actions:
  - name: lease
    artifact: Lease
    args:
      - param: oracle
      - param: landlord
      - param: tenant
      - timestamp: 1h
      - value: "14400"
      - value: "1500"
      - value: "6"
networks:
  anvil:
    params:
      oracle: "0x4159466da2e1caa9a4151fd9cf232c6Dd940372A"
      landlord: "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
      tenant: "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"
  sepolia:
    params:
      oracle: "0x4159466da2e1caa9a4151fd9cf232c6Dd940372A"
      landlord: "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
      tenant: "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"
`

const oracleRollingRentMigration = `name: oracle-rolling-rent
description: Fresh USD oracle and a rolling rent contract reading from it
actions:
  - name: oracle
    artifact: USDOracle
  - name: rent
    artifact: RollingRent
    args:
      - ref: oracle
      - param: landlord
      - param: tenant
networks:
  anvil:
    params:
      landlord: "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
      tenant: "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"
  sepolia:
    params:
      landlord: "0xb180cF51649691Db7864bB9f01B06ACf383Fb356"
      tenant: "0xddeC6C333538fCD3de7cfB56D6beed7Fd8dEE604"
`

const rollingRentMigration = `name: rolling-rent
description: Rolling rent contract without constructor arguments
actions:
  - name: rent
    artifact: RollingRent
`

// Ensure the adapter implements the interface
var _ usecase.StarterTemplates = (*StarterTemplatesAdapter)(nil)
