package render

import (
	"fmt"
	"io"

	"github.com/rentchain/rentdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.NetworkListResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in rentdeploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, info := range result.Networks {
		switch {
		case info.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", info.Name, info.Error)
		case info.Network.ChainID == 0:
			fmt.Fprintf(r.out, "  ⚠️  %s - Chain ID unknown (RPC unreachable)\n", info.Name)
		default:
			line := fmt.Sprintf("  ✅ %s - Chain ID: %d", info.Name, info.Network.ChainID)
			if info.Network.IsLocal() {
				line += " (local)"
			}
			if info.Network.ExplorerURL != "" {
				line += " - " + info.Network.ExplorerURL
			}
			fmt.Fprintln(r.out, line)
		}
	}

	return nil
}
