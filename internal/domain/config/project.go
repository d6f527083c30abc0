package config

import "path/filepath"

// ArtifactFormat selects the layout of compiled contract artifacts
type ArtifactFormat string

const (
	ArtifactFormatFoundry ArtifactFormat = "foundry"
	ArtifactFormatTruffle ArtifactFormat = "truffle"
)

// ProjectConfig is the structure of rentdeploy.toml
type ProjectConfig struct {
	Artifacts  ArtifactsConfig          `toml:"artifacts"`
	Migrations MigrationsConfig         `toml:"migrations"`
	Networks   map[string]NetworkConfig `toml:"networks"`
	Senders    map[string]SenderConfig  `toml:"senders"`
}

// ArtifactsConfig tells where compiled artifacts live
type ArtifactsConfig struct {
	Format ArtifactFormat `toml:"format,omitempty"`
	Dir    string         `toml:"dir,omitempty"`
}

// MigrationsConfig tells where migration files live
type MigrationsConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// NetworkConfig is a network entry of rentdeploy.toml
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
	Sender      string `toml:"sender,omitempty"`
}

// SenderConfig describes an account able to sign deployments
type SenderConfig struct {
	PrivateKey string `toml:"private_key,omitempty"`
	// Address is used for dry runs when no key is configured
	Address string `toml:"address,omitempty"`
}

// DefaultArtifactsDir returns the directory the toolchain of a format writes artifacts to
func DefaultArtifactsDir(format ArtifactFormat) string {
	if format == ArtifactFormatTruffle {
		return filepath.Join("build", "contracts")
	}
	return "out"
}

// DefaultProjectConfig returns the settings used when fields are omitted
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Artifacts: ArtifactsConfig{
			Format: ArtifactFormatFoundry,
			Dir:    DefaultArtifactsDir(ArtifactFormatFoundry),
		},
		Migrations: MigrationsConfig{
			Dir: "migrations",
		},
		Networks: map[string]NetworkConfig{},
		Senders:  map[string]SenderConfig{},
	}
}
