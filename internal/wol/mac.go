// Package wol implements MAC address parsing and the Wake-on-LAN magic packet layout.
package wol

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"
)

// MACSize is the length of a MAC-48 address in bytes.
const MACSize = 6

// MAC is a validated 6-byte hardware address.
type MAC [MACSize]byte

var macSeparators = strings.NewReplacer(":", "", "-", "")

// ParseMAC parses a MAC address written as 12 hex digits, optionally
// separated by ':' or '-'. Separators are removed wherever they appear.
func ParseMAC(s string) (MAC, error) {
	digits := strings.ToLower(macSeparators.Replace(s))

	if utf8.RuneCountInString(digits) != 2*MACSize {
		return MAC{}, &ParseError{Input: s, Err: ErrInvalidLength}
	}

	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return MAC{}, &ParseError{Input: s, Err: ErrInvalidFormat}
		}
	}

	var mac MAC
	if _, err := hex.Decode(mac[:], []byte(digits)); err != nil {
		return MAC{}, &ParseError{Input: s, Err: ErrInvalidFormat}
	}

	return mac, nil
}

// MustParseMAC is like ParseMAC but panics on error. Only use with known-valid input.
func MustParseMAC(s string) MAC {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return mac
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

// String formats the address as lower-case colon separated hex.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// HardwareAddr returns a copy of the address as a net.HardwareAddr.
func (m MAC) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, MACSize)
	copy(hw, m[:])
	return hw
}
