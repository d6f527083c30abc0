package deployer

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rentchain/rentdeploy/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultSender is used when a network does not name its sender
const DefaultSender = "deployer"

// Sender is the account deployments are sent from
type Sender struct {
	Name    string
	Address common.Address
	Key     *ecdsa.PrivateKey // nil when only an address is configured
}

// ResolveSender picks the sender of the selected network: the one it names, the only
// configured sender, or the one called "deployer"
func ResolveSender(cfg *config.RuntimeConfig) (*Sender, error) {
	if cfg.ProjectConfig == nil || len(cfg.ProjectConfig.Senders) == 0 {
		return nil, fmt.Errorf("no senders configured in rentdeploy.toml")
	}
	senders := cfg.ProjectConfig.Senders

	name := ""
	if cfg.Network != nil {
		name = cfg.Network.Sender
	}
	if name == "" {
		if len(senders) == 1 {
			name = lo.Keys(senders)[0]
		} else {
			name = DefaultSender
		}
	}

	sc, ok := senders[name]
	if !ok {
		return nil, fmt.Errorf("sender '%s' not found in rentdeploy.toml [senders]", name)
	}

	sender := &Sender{Name: name}
	if sc.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(sc.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key for sender %s: %w", name, err)
		}
		sender.Key = key
		sender.Address = crypto.PubkeyToAddress(key.PublicKey)

		if sc.Address != "" && common.HexToAddress(sc.Address) != sender.Address {
			return nil, fmt.Errorf("sender %s: address %s does not match private key (%s)", name, sc.Address, sender.Address.Hex())
		}
		return sender, nil
	}

	if sc.Address == "" || !common.IsHexAddress(sc.Address) {
		return nil, fmt.Errorf("sender %s needs a private_key or a valid address", name)
	}
	sender.Address = common.HexToAddress(sc.Address)
	return sender, nil
}
