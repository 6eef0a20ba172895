package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Decrypt opens an encoded blob produced by Encrypt.
// It returns ErrMalformedCiphertext when the blob is not a well-formed
// envelope and ErrDecryptionFailed when authentication fails, which means a
// wrong password or tampered ciphertext.
func Decrypt(encoded string, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyInput
	}

	env, err := decodeEnvelope(encoded)
	if err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) != saltLen {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedCiphertext)
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != nonceLen {
		return nil, fmt.Errorf("%w: bad nonce", ErrMalformedCiphertext)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.CipherText)
	if err != nil || len(ciphertext) == 0 {
		return nil, fmt.Errorf("%w: bad ciphertext", ErrMalformedCiphertext)
	}

	aesGCM, err := newGCM(password, salt, Params{N: env.N, R: env.R, P: env.P})
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// Inspect returns the KDF parameters recorded in an encoded blob.
func Inspect(encoded string) (Params, error) {
	env, err := decodeEnvelope(encoded)
	if err != nil {
		return Params{}, err
	}
	return Params{N: env.N, R: env.R, P: env.P}, nil
}

func decodeEnvelope(encoded string) (*envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedCiphertext, env.Version)
	}
	if env.KDF != kdfScrypt {
		return nil, fmt.Errorf("%w: unsupported kdf %q", ErrMalformedCiphertext, env.KDF)
	}

	params := Params{N: env.N, R: env.R, P: env.P}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: bad kdf params: %v", ErrMalformedCiphertext, err)
	}
	return &env, nil
}
