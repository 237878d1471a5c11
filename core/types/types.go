package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"

	"github.com/twopieare/foundry-fund-me/hexutil"
)

// AddressLength is the expected length of an account address in bytes
const AddressLength = 20

var addressT = reflect.TypeOf(Address{})

// Address represents an account identity: the 20-byte address of either a
// contributor or the owner.
type Address [AddressLength]byte

// BytesToAddress converts b to an Address, left-padding with zeroes if needed.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses a 0x-prefixed hex string into an Address.
func HexToAddress(s string) Address {
	return BytesToAddress(hexutil.MustDecode(s))
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return len(s) == 2*AddressLength && isHex(s)
}

// Bytes returns the raw bytes of the address
func (a Address) Bytes() []byte { return a[:] }

// Big returns the address as a big integer
func (a Address) Big() *big.Int { return new(big.Int).SetBytes(a[:]) }

// Hex returns the 0x-prefixed hex encoding of the address
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String implements the stringer interface and is used also by the logger.
func (a Address) String() string {
	return a.Hex()
}

// SetBytes sets the address to the value of b. If b is longer than the address
// length, b is cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText parses an address in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// MarshalJSON encodes the address as a json string.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}

// UnmarshalJSON parses an address in hex syntax.
func (a *Address) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(addressT, input, a[:])
}

// Compare returns the byte-wise ordering of a and a2.
func (a *Address) Compare(a2 Address) int {
	return bytes.Compare(a.Bytes(), a2.Bytes())
}

func isHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
