package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rentchain/rentdeploy/internal/domain/config"
)

// InitProject writes a starter configuration and sample migrations
type InitProject struct {
	cfg       *config.RuntimeConfig
	writer    FileWriter
	templates StarterTemplates
}

// NewInitProject creates a new init project use case
func NewInitProject(cfg *config.RuntimeConfig, writer FileWriter, templates StarterTemplates) *InitProject {
	return &InitProject{cfg: cfg, writer: writer, templates: templates}
}

// InitProjectParams contains parameters for init
type InitProjectParams struct {
	Force bool // Overwrite existing files
}

// InitProjectResult lists what init did with each file
type InitProjectResult struct {
	Created []string
	Skipped []string
}

// Run writes every starter file, leaving existing files untouched unless forced
func (uc *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	files, err := uc.templates.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := &InitProjectResult{}
	for _, rel := range paths {
		path := filepath.Join(uc.cfg.ProjectRoot, rel)

		exists, err := uc.writer.FileExists(ctx, path)
		if err != nil {
			return nil, err
		}
		if exists && !params.Force {
			result.Skipped = append(result.Skipped, rel)
			continue
		}

		if err := uc.writer.WriteFile(ctx, path, files[rel]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", rel, err)
		}
		result.Created = append(result.Created, rel)
	}

	return result, nil
}
