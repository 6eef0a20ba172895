package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 1
	kdfScrypt       = "scrypt"

	keyLen   = 32
	saltLen  = 32
	nonceLen = 12
)

var (
	ErrEmptyInput          = errors.New("plaintext and password must not be empty")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// Params are the scrypt cost parameters. They are written into every
// envelope, so changing them only affects new encryptions.
type Params struct {
	N int
	R int
	P int
}

// DefaultParams returns N=2^18, r=8, p=1 (about 256MB of memory per derivation).
func DefaultParams() Params {
	return Params{N: 1 << 18, R: 8, P: 1}
}

// Limits on what a parameter set may cost. scrypt uses 128*N*r bytes and p
// times that much work.
const (
	MaxScryptR      = 32
	MaxScryptP      = 16
	MaxScryptMemory = 1 << 30
)

// Validate checks that the parameters are acceptable to scrypt and stay
// within the memory and work limits.
func (p Params) Validate() error {
	if p.N <= 1 || p.N&(p.N-1) != 0 {
		return fmt.Errorf("scrypt N must be a power of two greater than 1, got %d", p.N)
	}
	if p.R <= 0 || p.P <= 0 {
		return fmt.Errorf("scrypt r and p must be positive, got r=%d p=%d", p.R, p.P)
	}
	if p.R > MaxScryptR || p.P > MaxScryptP {
		return fmt.Errorf("scrypt r and p must be at most %d and %d, got r=%d p=%d", MaxScryptR, MaxScryptP, p.R, p.P)
	}
	if p.Memory() > MaxScryptMemory {
		return fmt.Errorf("scrypt N=%d r=%d needs %d bytes, limit is %d", p.N, p.R, p.Memory(), MaxScryptMemory)
	}
	return nil
}

// Memory returns the bytes one derivation allocates.
func (p Params) Memory() int64 {
	return 128 * int64(p.N) * int64(p.R)
}

// envelope is the JSON document behind an encoded blob
type envelope struct {
	Version    int    `json:"v"`
	KDF        string `json:"kdf"`
	N          int    `json:"n"`
	R          int    `json:"r"`
	P          int    `json:"p"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"ct"`
}

// Encrypt seals plaintext under password with scrypt + AES-256-GCM and
// returns a text-safe (base64) encoding of the envelope.
// password must be []byte so the caller can zero it after use.
func Encrypt(plaintext, password []byte, params Params) (string, error) {
	if len(plaintext) == 0 || len(password) == 0 {
		return "", ErrEmptyInput
	}
	if err := params.Validate(); err != nil {
		return "", err
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, params)
	if err != nil {
		return "", err
	}

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	env := envelope{
		Version:    envelopeVersion,
		KDF:        kdfScrypt,
		N:          params.N,
		R:          params.R,
		P:          params.P,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func newGCM(password, salt []byte, params Params) (cipher.AEAD, error) {
	// Derive key from password
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
