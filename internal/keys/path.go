package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// Network selects the BIP-44 coin type used in derivation paths.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// purpose 84' (native segwit style accounts)
const purpose = 84

var ErrInvalidPath = errors.New("invalid derivation path")

// ParseNetwork accepts "mainnet" or "testnet" (case-insensitive).
func ParseNetwork(s string) (Network, error) {
	switch Network(strings.ToLower(strings.TrimSpace(s))) {
	case Mainnet:
		return Mainnet, nil
	case Testnet:
		return Testnet, nil
	default:
		return "", fmt.Errorf("unknown network %q", s)
	}
}

// CoinType returns 0 for mainnet and 1 for testnet.
func (n Network) CoinType() uint32 {
	if n == Testnet {
		return 1
	}
	return 0
}

// Path is a BIP-32 derivation path such as m/84'/0'/0'/0/0.
type Path string

// PathFor returns the first external address path for the network.
func PathFor(n Network) Path {
	return Path(fmt.Sprintf("m/%d'/%d'/0'/0/0", purpose, n.CoinType()))
}

// Indexes parses the path into child indexes, hardened ones offset by
// bip32.FirstHardenedChild. Both ' and h mark hardened components.
func (p Path) Indexes() ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(string(p)), "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: must start with m/", ErrInvalidPath)
	}

	out := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad component %q", ErrInvalidPath, part)
		}
		if n >= uint64(bip32.FirstHardenedChild) {
			return nil, fmt.Errorf("%w: component %d out of range", ErrInvalidPath, n)
		}
		idx := uint32(n)
		if hardened {
			idx += bip32.FirstHardenedChild
		}
		out = append(out, idx)
	}
	return out, nil
}

// ParsePath validates s and returns it as a Path.
func ParsePath(s string) (Path, error) {
	p := Path(strings.TrimSpace(s))
	if _, err := p.Indexes(); err != nil {
		return "", err
	}
	return p, nil
}
