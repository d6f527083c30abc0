package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Repository loads compiled contract artifacts from a Foundry out/ directory
// (out/<File>.sol/<Contract>.json) or a Truffle build directory
// (build/contracts/<Contract>.json)
type Repository struct {
	dir    string
	format config.ArtifactFormat

	mu    sync.Mutex
	cache map[string]*models.Artifact
}

// NewRepository creates an artifact repository for the configured project
func NewRepository(cfg *config.RuntimeConfig) *Repository {
	format := config.ArtifactFormatFoundry
	var dir string
	if cfg.ProjectConfig != nil {
		if cfg.ProjectConfig.Artifacts.Format != "" {
			format = cfg.ProjectConfig.Artifacts.Format
		}
		dir = cfg.ProjectConfig.Artifacts.Dir
	}
	if dir == "" {
		dir = config.DefaultArtifactsDir(format)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}

	return &Repository{
		dir:    dir,
		format: format,
		cache:  make(map[string]*models.Artifact),
	}
}

// artifactFile is the subset of Foundry and Truffle artifact JSON we read
type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// GetArtifact loads an artifact by contract name. "Lease", "Lease.sol" and
// "Lease.sol:Lease" all name the same artifact.
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.cache[name]; ok {
		return a, nil
	}

	file, contract := splitArtifactName(name)

	path, err := r.locate(file, contract)
	if err != nil {
		return nil, err
	}

	artifact, err := loadArtifact(path, contract)
	if err != nil {
		return nil, err
	}

	r.cache[name] = artifact
	return artifact, nil
}

// ListArtifacts returns the names of all contracts found in the artifacts directory
func (r *Repository) ListArtifacts(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".json" {
			names = append(names, strings.TrimSuffix(d.Name(), ".json"))
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan artifacts in %s: %w", r.dir, err)
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names, nil
}

// locate finds the artifact JSON file for a contract
func (r *Repository) locate(file, contract string) (string, error) {
	var candidate string
	switch r.format {
	case config.ArtifactFormatTruffle:
		candidate = filepath.Join(r.dir, contract+".json")
	default:
		candidate = filepath.Join(r.dir, file+".sol", contract+".json")
	}
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	// Foundry names the directory after the source file, which may differ from the contract
	if r.format != config.ArtifactFormatTruffle {
		matches, _ := filepath.Glob(filepath.Join(r.dir, "*.sol", contract+".json"))
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return "", fmt.Errorf("multiple artifacts named %s - use File.sol:%s to disambiguate: %s",
				contract, contract, strings.Join(matches, ", "))
		}
	}

	return "", r.notFound(contract)
}

// notFound builds an error suggesting close artifact names
func (r *Repository) notFound(contract string) error {
	names, _ := r.ListArtifacts(context.Background())
	matches := fuzzy.Find(contract, names)

	suggestions := make([]string, 0, 3)
	for i := 0; i < len(matches) && i < 3; i++ {
		suggestions = append(suggestions, matches[i].Str)
	}

	return domain.NotFoundWithSuggestionsErr{
		Kind:        "artifact",
		Name:        contract,
		Suggestions: suggestions,
		Err:         domain.ErrArtifactNotFound,
	}
}

// splitArtifactName splits "File.sol:Contract" into its file and contract parts
func splitArtifactName(name string) (file, contract string) {
	name = strings.TrimSpace(name)
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		file = strings.TrimSuffix(filepath.Base(name[:idx]), ".sol")
		contract = name[idx+1:]
		return file, contract
	}
	contract = strings.TrimSuffix(filepath.Base(name), ".sol")
	return contract, contract
}

// loadArtifact parses an artifact JSON file
func loadArtifact(path, contract string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var raw artifactFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %s: %w", path, err)
	}

	code, err := parseBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	name := contract
	if raw.ContractName != "" {
		name = raw.ContractName
	}

	return &models.Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsedABI,
		Bytecode: code,
	}, nil
}

// parseBytecode accepts Truffle's "0x..." string and Foundry's {"object": "0x..."}
func parseBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing bytecode")
	}

	var hexCode string
	if err := json.Unmarshal(raw, &hexCode); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unrecognized bytecode format")
		}
		hexCode = obj.Object
	}

	if strings.Contains(hexCode, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if !strings.HasPrefix(hexCode, "0x") {
		hexCode = "0x" + hexCode
	}
	if hexCode == "0x" {
		return nil, fmt.Errorf("bytecode is empty (abstract contract or interface?)")
	}

	code, err := hexutil.Decode(hexCode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return code, nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
