package forge

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/creack/pty"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, command ...string) *BuilderAdapter {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	_ = tty.Close()
	_ = ptmx.Close()
	b := NewBuilderAdapter(&config.RuntimeConfig{ProjectRoot: t.TempDir()}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.command = command
	return b
}

func TestNewBuilderAdapterCommand(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	foundry := NewBuilderAdapter(&config.RuntimeConfig{ProjectConfig: config.DefaultProjectConfig()}, log)
	assert.Equal(t, []string{"forge", "build"}, foundry.command)

	project := config.DefaultProjectConfig()
	project.Artifacts.Format = config.ArtifactFormatTruffle
	truffle := NewBuilderAdapter(&config.RuntimeConfig{ProjectConfig: project}, log)
	assert.Equal(t, []string{"npx", "truffle", "compile"}, truffle.command)
}

func TestBuildSuccess(t *testing.T) {
	b := newTestBuilder(t, "sh", "-c", "echo Compiling 3 files")
	require.NoError(t, b.Build(context.Background()))
}

func TestBuildFailureIncludesOutput(t *testing.T) {
	b := newTestBuilder(t, "sh", "-c", "echo 'Error: Lease.sol:12 undeclared identifier'; exit 1")
	err := b.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared identifier")
}

func TestBuildMissingBinary(t *testing.T) {
	b := newTestBuilder(t, "rentdeploy-no-such-compiler")
	err := b.Build(context.Background())
	assert.ErrorContains(t, err, "failed to start")
}
