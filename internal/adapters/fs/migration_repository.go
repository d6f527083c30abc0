package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rentchain/rentdeploy/internal/domain"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/domain/models"
	"github.com/rentchain/rentdeploy/internal/usecase"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

var migrationExtensions = []string{".yaml", ".yml"}

// MigrationRepository loads migration YAML files
type MigrationRepository struct {
	projectRoot string
	dir         string
}

// NewMigrationRepository creates a repository rooted at the configured migrations directory
func NewMigrationRepository(cfg *config.RuntimeConfig) *MigrationRepository {
	dir := config.DefaultProjectConfig().Migrations.Dir
	if cfg.ProjectConfig != nil && cfg.ProjectConfig.Migrations.Dir != "" {
		dir = cfg.ProjectConfig.Migrations.Dir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &MigrationRepository{projectRoot: cfg.ProjectRoot, dir: dir}
}

// Load reads a migration. ref is either a path to a YAML file or the name of a
// file inside the migrations directory, with or without extension.
func (r *MigrationRepository) Load(ctx context.Context, ref string) (*models.Migration, error) {
	path, err := r.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration %s: %w", path, err)
	}

	var migration models.Migration
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&migration); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidPlan, path, err)
	}

	if migration.Name == "" {
		migration.Name = migrationName(path)
	}
	migration.Source = r.relative(path)
	return &migration, nil
}

// List returns the names of the migrations in the migrations directory
func (r *MigrationRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isMigrationFile(entry.Name()) {
			continue
		}
		names = append(names, migrationName(entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}

func (r *MigrationRepository) resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("migration name or path is required")
	}

	// Explicit paths win over names
	if isMigrationFile(ref) || strings.ContainsRune(ref, filepath.Separator) {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.projectRoot, path)
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if strings.ContainsRune(ref, filepath.Separator) {
			return "", domain.NotFoundWithSuggestionsErr{Kind: "migration", Name: ref}
		}
	}

	name := migrationName(ref)
	for _, ext := range migrationExtensions {
		path := filepath.Join(r.dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	known, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	var suggestions []string
	for i, match := range fuzzy.Find(name, known) {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return "", domain.NotFoundWithSuggestionsErr{Kind: "migration", Name: ref, Suggestions: suggestions}
}

func (r *MigrationRepository) relative(path string) string {
	if rel, err := filepath.Rel(r.projectRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func isMigrationFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range migrationExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func migrationName(path string) string {
	base := filepath.Base(path)
	if isMigrationFile(base) {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// Ensure the adapter implements the interface
var _ usecase.MigrationRepository = (*MigrationRepository)(nil)
