package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rentchain/rentdeploy/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "rentdeploy.toml"

// loadEnvFiles loads .env and .env.local so that ${VAR} references in
// rentdeploy.toml can be expanded. Variables already set in the process win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectConfig reads rentdeploy.toml from the project root. A missing file
// yields the defaults and an empty source path.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	loadEnvFiles(projectRoot)

	cfg := config.DefaultProjectConfig()
	path := filepath.Join(projectRoot, ProjectFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}

	// the artifacts dir default depends on the format, applied after decoding
	cfg.Artifacts.Dir = ""
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}

	if cfg.Artifacts.Format == "" {
		cfg.Artifacts.Format = config.ArtifactFormatFoundry
	}
	switch cfg.Artifacts.Format {
	case config.ArtifactFormatFoundry, config.ArtifactFormatTruffle:
	default:
		return nil, "", fmt.Errorf("unsupported artifacts format '%s' (expected foundry or truffle)", cfg.Artifacts.Format)
	}
	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = config.DefaultArtifactsDir(cfg.Artifacts.Format)
	}
	if cfg.Migrations.Dir == "" {
		cfg.Migrations.Dir = "migrations"
	}
	if cfg.Networks == nil {
		cfg.Networks = map[string]config.NetworkConfig{}
	}
	if cfg.Senders == nil {
		cfg.Senders = map[string]config.SenderConfig{}
	}

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = network
	}
	for name, sender := range cfg.Senders {
		sender.PrivateKey = os.ExpandEnv(sender.PrivateKey)
		sender.Address = os.ExpandEnv(sender.Address)
		cfg.Senders[name] = sender
	}

	return cfg, path, nil
}
