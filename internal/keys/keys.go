package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/hkdf"
)

const protectInfo = "qsw:v1:mldsa65"

var (
	ErrInvalidSeed    = errors.New("invalid seed")
	ErrKeyConsumed    = errors.New("raw key pair already protected")
	ErrInvalidKeyPair = errors.New("invalid protected key pair")
	ErrMismatchedPair = errors.New("public key does not match private key")
)

var protectedScheme = mldsa65.Scheme()

// RawKeyPair is the secp256k1 child key produced by BIP-32 derivation.
// It must go through Protect exactly once before it is stored or used.
type RawKeyPair struct {
	privateKey []byte
	publicKey  []byte
	consumed   bool
}

// PublicKey returns the compressed secp256k1 public key.
func (k *RawKeyPair) PublicKey() []byte {
	return cloneBytes(k.publicKey)
}

// Derive walks path from the BIP-32 master key of seed.
func Derive(seed []byte, path Path) (*RawKeyPair, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidSeed, len(seed))
	}
	indexes, err := path.Indexes()
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	for _, idx := range indexes {
		key, err = key.NewChildKey(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key %d: %w", idx, err)
		}
	}

	return &RawKeyPair{
		privateKey: cloneBytes(key.Key),
		publicKey:  cloneBytes(key.PublicKey().Key),
	}, nil
}

// ProtectedKeyPair is an ML-DSA-65 key pair. It can only be obtained from
// Protect or LoadProtected, so protection cannot be applied to it again.
type ProtectedKeyPair struct {
	private sign.PrivateKey
	public  sign.PublicKey
}

// Protect applies the quantum-safe hardening step: the raw private key is
// expanded with HKDF-SHA256 into an ML-DSA-65 seed. The raw private key is
// wiped and the RawKeyPair cannot be protected a second time.
func Protect(raw *RawKeyPair) (*ProtectedKeyPair, error) {
	if raw == nil || raw.consumed {
		return nil, ErrKeyConsumed
	}
	defer func() {
		clear(raw.privateKey)
		raw.consumed = true
	}()

	seed := make([]byte, protectedScheme.SeedSize())
	defer clear(seed)
	r := hkdf.New(sha256.New, raw.privateKey, raw.publicKey, []byte(protectInfo))
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to expand protection seed: %w", err)
	}

	pub, priv := protectedScheme.DeriveKey(seed)
	return &ProtectedKeyPair{private: priv, public: pub}, nil
}

// LoadProtected rebuilds a persisted pair. It checks that the public half
// belongs to the private half.
func LoadProtected(privateKey, publicKey []byte) (*ProtectedKeyPair, error) {
	if len(privateKey) != protectedScheme.PrivateKeySize() || len(publicKey) != protectedScheme.PublicKeySize() {
		return nil, fmt.Errorf("%w: unexpected key sizes", ErrInvalidKeyPair)
	}
	priv, err := protectedScheme.UnmarshalBinaryPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyPair, err)
	}
	pub, err := protectedScheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyPair, err)
	}
	if !pub.Equal(priv.Public()) {
		return nil, ErrMismatchedPair
	}
	return &ProtectedKeyPair{private: priv, public: pub}, nil
}

// PrivateKey returns a copy of the packed private key.
func (k *ProtectedKeyPair) PrivateKey() []byte {
	b, _ := k.private.MarshalBinary()
	return b
}

// PublicKey returns a copy of the packed public key.
func (k *ProtectedKeyPair) PublicKey() []byte {
	b, _ := k.public.MarshalBinary()
	return b
}

// Wipe overwrites the private key in place. circl has no eraser for ML-DSA
// keys, so the key is unpacked from an all-zero encoding, which replaces the
// seed, the secret vectors and every cached value. The pair must not be used
// afterwards.
func (k *ProtectedKeyPair) Wipe() {
	if k == nil {
		return
	}
	if priv, ok := k.private.(*mldsa65.PrivateKey); ok {
		var zero [mldsa65.PrivateKeySize]byte
		priv.Unpack(&zero)
	}
}

// Address returns the wallet address of the protected public key.
func (k *ProtectedKeyPair) Address() string {
	return Address(k.PublicKey())
}

// Sign returns an ML-DSA-65 signature over msg.
func (k *ProtectedKeyPair) Sign(msg []byte) []byte {
	return protectedScheme.Sign(k.private, msg, nil)
}

// Equal reports whether both pairs hold the same keys.
func (k *ProtectedKeyPair) Equal(other *ProtectedKeyPair) bool {
	if other == nil {
		return false
	}
	return k.public.Equal(other.public) && k.private.Equal(other.private)
}

// Verify checks an ML-DSA-65 signature against a packed public key.
func Verify(publicKey, msg, sig []byte) bool {
	pub, err := protectedScheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false
	}
	return protectedScheme.Verify(pub, msg, sig, nil)
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
