package forge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// BuilderAdapter compiles the project's contracts before artifacts are loaded
type BuilderAdapter struct {
	log         *slog.Logger
	projectRoot string
	command     []string
	stream      bool
}

// NewBuilderAdapter creates a builder running `forge build`, or `truffle compile`
// for Truffle projects
func NewBuilderAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *BuilderAdapter {
	command := []string{"forge", "build"}
	if cfg.ProjectConfig != nil && cfg.ProjectConfig.Artifacts.Format == config.ArtifactFormatTruffle {
		command = []string{"npx", "truffle", "compile"}
	}

	return &BuilderAdapter{
		log:         log.With("component", "BuilderAdapter"),
		projectRoot: cfg.ProjectRoot,
		command:     command,
		stream:      cfg.Debug,
	}
}

// Build runs the compiler under a pty so that it keeps its colored output.
// Output is echoed in debug mode and otherwise only reported on failure.
func (b *BuilderAdapter) Build(ctx context.Context) error {
	start := time.Now()
	b.log.Debug("building contracts", "command", strings.Join(b.command, " "), "dir", b.projectRoot)

	cmd := exec.CommandContext(ctx, b.command[0], b.command[1:]...)
	cmd.Dir = b.projectRoot

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", b.command[0], err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if b.stream {
		sink = io.MultiWriter(&output, os.Stdout)
	}
	// Reading a pty whose child exited ends with EIO on Linux
	_, _ = io.Copy(sink, ptyFile)

	if err := cmd.Wait(); err != nil {
		b.log.Error("build failed", "error", err, "duration", time.Since(start))
		return fmt.Errorf("%s failed: %w\nOutput: %s", strings.Join(b.command, " "), err, strings.TrimSpace(output.String()))
	}

	b.log.Debug("build completed", "duration", time.Since(start))
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactBuilder = (*BuilderAdapter)(nil)
