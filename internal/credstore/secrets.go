package credstore

import (
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/qsafe-wallet/internal/keys"
	"github.com/AlexZinkM/qsafe-wallet/internal/mnemonic"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
)

// WalletSecrets is the sensitive payload kept only in memory and inside the
// encrypted blob.
type WalletSecrets struct {
	Mnemonic mnemonic.Mnemonic
	Seed     mnemonic.Seed
	KeyPair  *keys.ProtectedKeyPair
	Path     keys.Path
	Network  keys.Network
}

// Address returns the address of the protected public key.
func (s *WalletSecrets) Address() string {
	if s == nil || s.KeyPair == nil {
		return ""
	}
	return s.KeyPair.Address()
}

// Wipe zeroes the seed and the ML-DSA private key and drops every reference
// to key material. The mnemonic is an immutable string and is only dropped.
func (s *WalletSecrets) Wipe() {
	if s == nil {
		return
	}
	clear(s.Seed)
	s.Seed = nil
	s.Mnemonic = ""
	s.KeyPair.Wipe()
	s.KeyPair = nil
}

func (s *WalletSecrets) validate() error {
	if s == nil || s.Mnemonic == "" || len(s.Seed) == 0 || s.KeyPair == nil {
		return ErrInvalidSecrets
	}
	return nil
}

func (s *WalletSecrets) toStored() model.StoredSecrets {
	return model.StoredSecrets{
		Mnemonic: string(s.Mnemonic),
		Seed:     s.Seed.Hex(),
		KeyPair: model.StoredKeyPair{
			PrivateKey: hex.EncodeToString(s.KeyPair.PrivateKey()),
			PublicKey:  hex.EncodeToString(s.KeyPair.PublicKey()),
		},
		Path:    string(s.Path),
		Network: string(s.Network),
	}
}

// fromStored rebuilds secrets, defaulting the optional network and path.
func fromStored(st model.StoredSecrets) (*WalletSecrets, error) {
	if st.Mnemonic == "" {
		return nil, fmt.Errorf("%w: missing mnemonic", ErrCorrupted)
	}
	seed, err := mnemonic.ParseSeed(st.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	priv, err := hex.DecodeString(st.KeyPair.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: bad private key encoding", ErrCorrupted)
	}
	defer clear(priv)
	pub, err := hex.DecodeString(st.KeyPair.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: bad public key encoding", ErrCorrupted)
	}
	kp, err := keys.LoadProtected(priv, pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	network := keys.Mainnet
	if st.Network != "" {
		if network, err = keys.ParseNetwork(st.Network); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
	}
	path := keys.PathFor(network)
	if st.Path != "" {
		if path, err = keys.ParsePath(st.Path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
	}

	return &WalletSecrets{
		Mnemonic: mnemonic.Mnemonic(st.Mnemonic),
		Seed:     seed,
		KeyPair:  kp,
		Path:     path,
		Network:  network,
	}, nil
}
