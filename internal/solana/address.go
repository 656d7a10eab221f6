package solana

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// AddressLength is the byte length of a Solana public key.
const AddressLength = 32

// DecodeAddress decodes a base58 Solana address and checks its length.
func DecodeAddress(address string) ([]byte, error) {
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("decode address %q: %w", address, err)
	}
	if len(raw) != AddressLength {
		return nil, fmt.Errorf("address %q: expected %d bytes, got %d", address, AddressLength, len(raw))
	}
	return raw, nil
}

// IsValidAddress reports whether address is a well-formed Solana public key.
func IsValidAddress(address string) bool {
	_, err := DecodeAddress(address)
	return err == nil
}

// IsOnCurve reports whether the address is a point on the ed25519 curve,
// i.e. a keypair-backed wallet rather than a program derived address.
func IsOnCurve(address string) bool {
	raw, err := DecodeAddress(address)
	if err != nil {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// Account kinds returned by AccountKind.
const (
	KindWallet = "wallet"
	KindPDA    = "pda"
)

// AccountKind classifies an address as KindWallet (on curve) or KindPDA (off curve).
func AccountKind(address string) string {
	if IsOnCurve(address) {
		return KindWallet
	}
	return KindPDA
}

// MaskAddress shortens an address to its first 4 and last 4 characters joined
// by "...". Short inputs are clamped, so "abc" becomes "abc...abc".
func MaskAddress(address string) string {
	head := address
	if len(head) > 4 {
		head = head[:4]
	}
	tail := address
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return head + "..." + tail
}
