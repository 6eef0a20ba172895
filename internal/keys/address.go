package keys

import (
	"bytes"
	"errors"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// AddressPrefix is prepended to every wallet address.
const AddressPrefix = "qs1"

const (
	addressHashLen     = 20
	addressChecksumLen = 4
)

var ErrInvalidAddress = errors.New("invalid address")

// Address = prefix + base58(sha3-256(pub)[:20] || checksum4)
func Address(publicKey []byte) string {
	sum := sha3.Sum256(publicKey)
	payload := sum[:addressHashLen]

	combined := make([]byte, 0, addressHashLen+addressChecksumLen)
	combined = append(combined, payload...)
	combined = append(combined, addressChecksum(payload)...)
	return AddressPrefix + base58.Encode(combined)
}

// ValidateAddress checks the prefix, length and checksum of addr.
func ValidateAddress(addr string) error {
	if !strings.HasPrefix(addr, AddressPrefix) {
		return ErrInvalidAddress
	}
	raw, err := base58.Decode(strings.TrimPrefix(addr, AddressPrefix))
	if err != nil || len(raw) != addressHashLen+addressChecksumLen {
		return ErrInvalidAddress
	}
	payload, sum := raw[:addressHashLen], raw[addressHashLen:]
	if !bytes.Equal(sum, addressChecksum(payload)) {
		return ErrInvalidAddress
	}
	return nil
}

func addressChecksum(payload []byte) []byte {
	sum := sha3.Sum256(append([]byte(AddressPrefix), payload...))
	return sum[:addressChecksumLen]
}
