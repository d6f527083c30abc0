package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rentchain/rentdeploy/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, path := range result.Created {
		color.New(color.FgGreen).Fprintf(r.out, "✅ Created %s\n", path)
	}
	for _, path := range result.Skipped {
		color.New(color.FgYellow).Fprintf(r.out, "⊘ Skipped %s (already exists, use --force to overwrite)\n", path)
	}

	if len(result.Created) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")

	fmt.Fprintln(r.out, "1. Set the RPC URL and deployer key of each network in rentdeploy.toml or .env")
	fmt.Fprintln(r.out, "2. Compile the contracts:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   forge build")
	fmt.Fprintln(r.out, "3. Check a migration against the artifacts:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   rentdeploy plan lease --network anvil")
	fmt.Fprintln(r.out, "4. Deploy:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   rentdeploy migrate lease --network anvil")
	return nil
}
